package datamodel

import "errors"

var ErrUnknownVersion = errors.New("datamodel: unknown SCORM version")
