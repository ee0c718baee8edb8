package rte

import (
	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/datamodel"
)

// Version2004 is the value of the SCORM 2004 API object's version property.
const Version2004 = "1.0"

const (
	sentinelTrue  = "true"
	sentinelFalse = "false"
)

func sentinel(ok bool) string {
	if ok {
		return sentinelTrue
	}
	return sentinelFalse
}

// API12 is the SCORM 1.2 runtime object content finds as window.API.
type API12 struct {
	e *engine
}

func NewAPI12(site *apisite.Site) *API12 {
	return &API12{e: newEngine(site, datamodel.Scorm12)}
}

func (a *API12) Version() datamodel.Version { return datamodel.Scorm12 }
func (a *API12) Status() Status { return a.e.status }

func (a *API12) LMSInitialize(param string) string {
	return sentinel(a.e.initialize("LMSInitialize", param))
}

func (a *API12) LMSFinish(param string) string {
	return sentinel(a.e.terminate("LMSFinish", param))
}

func (a *API12) LMSGetValue(name string) string {
	return a.e.getValue("LMSGetValue", name)
}

func (a *API12) LMSSetValue(name, value string) string {
	return sentinel(a.e.setValue("LMSSetValue", name, value))
}

func (a *API12) LMSCommit(param string) string {
	return sentinel(a.e.commit("LMSCommit", param))
}

func (a *API12) LMSGetLastError() string {
	return a.e.lastError()
}

func (a *API12) LMSGetErrorString(code string) string {
	return a.e.errorString(code)
}

func (a *API12) LMSGetDiagnostic(code string) string {
	return a.e.diagnostic(code)
}

func (a *API12) invoke(method string, args []any) string {
	switch method {
	case "LMSInitialize":
		return sentinel(a.e.initialize(method, arg(args, 0)))
	case "LMSFinish":
		return sentinel(a.e.terminate(method, arg(args, 0)))
	case "LMSGetValue":
		return a.e.getValue(method, arg(args, 0))
	case "LMSSetValue":
		return sentinel(a.e.setValue(method, arg(args, 0), arg(args, 1)))
	case "LMSCommit":
		return sentinel(a.e.commit(method, arg(args, 0)))
	case "LMSGetLastError":
		return a.e.lastError()
	case "LMSGetErrorString":
		return a.e.errorString(arg(args, 0))
	case "LMSGetDiagnostic":
		return a.e.diagnostic(arg(args, 0))
	default:
		a.e.unknownMethod(method)
		return sentinelFalse
	}
}

// API2004 is the SCORM 2004 runtime object content finds as window.API_1484_11.
type API2004 struct {
	e *engine
}

func NewAPI2004(site *apisite.Site) *API2004 {
	return &API2004{e: newEngine(site, datamodel.Scorm2004)}
}

func (a *API2004) Version() datamodel.Version { return datamodel.Scorm2004 }
func (a *API2004) Status() Status { return a.e.status }

func (a *API2004) Initialize(param string) string {
	return sentinel(a.e.initialize("Initialize", param))
}

func (a *API2004) Terminate(param string) string {
	return sentinel(a.e.terminate("Terminate", param))
}

func (a *API2004) GetValue(name string) string {
	return a.e.getValue("GetValue", name)
}

func (a *API2004) SetValue(name, value string) string {
	return sentinel(a.e.setValue("SetValue", name, value))
}

func (a *API2004) Commit(param string) string {
	return sentinel(a.e.commit("Commit", param))
}

func (a *API2004) GetLastError() string {
	return a.e.lastError()
}

func (a *API2004) GetErrorString(code string) string {
	return a.e.errorString(code)
}

func (a *API2004) GetDiagnostic(code string) string {
	return a.e.diagnostic(code)
}

func (a *API2004) invoke(method string, args []any) string {
	switch method {
	case "Initialize":
		return sentinel(a.e.initialize(method, arg(args, 0)))
	case "Terminate":
		return sentinel(a.e.terminate(method, arg(args, 0)))
	case "GetValue":
		return a.e.getValue(method, arg(args, 0))
	case "SetValue":
		return sentinel(a.e.setValue(method, arg(args, 0), arg(args, 1)))
	case "Commit":
		return sentinel(a.e.commit(method, arg(args, 0)))
	case "GetLastError":
		return a.e.lastError()
	case "GetErrorString":
		return a.e.errorString(arg(args, 0))
	case "GetDiagnostic":
		return a.e.diagnostic(arg(args, 0))
	case "version":
		return Version2004
	default:
		a.e.unknownMethod(method)
		return sentinelFalse
	}
}

// ObjectVersion is the version property an API object shows content. Only the 2004 object
// has one; the 1.2 object reports "".
func ObjectVersion(api apisite.API) string {
	if _, ok := api.(*API2004); ok {
		return Version2004
	}
	return ""
}

// Factory builds the API object matching the site's version. It is the apisite.Factory
// used by every player session.
func Factory(site *apisite.Site) apisite.API {
	if site.Version() == datamodel.Scorm12 {
		return NewAPI12(site)
	}
	return NewAPI2004(site)
}

var (
	_ apisite.Factory = Factory
	_ invoker         = (*API12)(nil)
	_ invoker         = (*API2004)(nil)
)
