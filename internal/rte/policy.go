package rte

import "github.com/danmuck/rtectl/internal/scormerr"

// fault is the SCORM code and diagnostic reported for one failure kind.
type fault struct {
	code scormerr.Code
	diag string
}

// policy maps failure kinds to one version's codes and diagnostics.
type policy struct {
	initTwice, initAfterTerm            fault
	termBeforeInit, termAfterTerm       fault
	getBeforeInit, getAfterTerm         fault
	setBeforeInit, setAfterTerm         fault
	commitBeforeInit, commitAfterTerm   fault
	argNotEmpty, argNotString           fault
	getEmptyName, setEmptyName          fault
	getCount, getChildren, getVersion   fault
	setCount, setChildren, setVersion   fault
	getUndefined, setUndefined          fault
	writeOnly, readOnly, keywordSet     fault
	getCollectionEmpty, getIndexRange   fault
	setIndexRange                       fault
	notInitialized                      fault
	dependency, typeUnknown             fault
	typeMismatch, notScalar, outOfRange fault
	duplicatePattern, patternIndex      fault
	duplicateID                         fault
	commitFailed, termFailed            fault
	internal, unknownMethod             fault
}

var policy12 = policy{
	initTwice:          fault{scormerr.LMSGeneralException, "101-3"},
	initAfterTerm:      fault{scormerr.LMSGeneralException, "101-4"},
	termBeforeInit:     fault{scormerr.LMSNotInitialized, "301-1"},
	termAfterTerm:      fault{scormerr.LMSNotInitialized, "301-2"},
	getBeforeInit:      fault{scormerr.LMSNotInitialized, "301-1"},
	getAfterTerm:       fault{scormerr.LMSNotInitialized, "301-2"},
	setBeforeInit:      fault{scormerr.LMSNotInitialized, "301-1"},
	setAfterTerm:       fault{scormerr.LMSNotInitialized, "301-2"},
	commitBeforeInit:   fault{scormerr.LMSNotInitialized, "301-1"},
	commitAfterTerm:    fault{scormerr.LMSNotInitialized, "301-2"},
	argNotEmpty:        fault{scormerr.LMSInvalidArgument, "201-1"},
	argNotString:       fault{scormerr.LMSInvalidArgument, "201-2"},
	getEmptyName:       fault{scormerr.LMSInvalidArgument, "201-5"},
	setEmptyName:       fault{scormerr.LMSInvalidArgument, "201-5"},
	getCount:           fault{scormerr.LMSNotAnArray, "203-1"},
	getChildren:        fault{scormerr.LMSCannotHaveChildren, "202-1"},
	getVersion:         fault{scormerr.LMSNotImplemented, "401-1"},
	setCount:           fault{scormerr.LMSNotAnArray, "203-1"},
	setChildren:        fault{scormerr.LMSCannotHaveChildren, "202-1"},
	setVersion:         fault{scormerr.LMSNotImplemented, "401-1"},
	getUndefined:       fault{scormerr.LMSInvalidArgument, "201-3"},
	setUndefined:       fault{scormerr.LMSInvalidArgument, "201-3"},
	writeOnly:          fault{scormerr.LMSElementWriteOnly, "404-1"},
	readOnly:           fault{scormerr.LMSElementReadOnly, "403-1"},
	keywordSet:         fault{scormerr.LMSElementIsKeyword, "402-1"},
	getCollectionEmpty: fault{scormerr.LMSInvalidArgument, "201-4"},
	getIndexRange:      fault{scormerr.LMSInvalidArgument, "201-4"},
	setIndexRange:      fault{scormerr.LMSInvalidArgument, "201-4"},
	// Every readable 1.2 element has a default, so an unset value reads as "".
	notInitialized:   fault{},
	dependency:       fault{scormerr.LMSIncorrectDataType, "405-4"},
	typeUnknown:      fault{scormerr.LMSIncorrectDataType, "405-4"},
	typeMismatch:     fault{scormerr.LMSIncorrectDataType, "405-1"},
	notScalar:        fault{scormerr.LMSIncorrectDataType, "405-2"},
	outOfRange:       fault{scormerr.LMSIncorrectDataType, "405-3"},
	duplicatePattern: fault{scormerr.LMSIncorrectDataType, "405-1"},
	patternIndex:     fault{scormerr.LMSIncorrectDataType, "405-1"},
	duplicateID:      fault{scormerr.LMSIncorrectDataType, "405-1"},
	commitFailed:     fault{scormerr.LMSGeneralException, "101-5"},
	termFailed:       fault{scormerr.LMSGeneralException, "101-5"},
	internal:         fault{scormerr.LMSGeneralException, "101-1"},
	unknownMethod:    fault{scormerr.LMSGeneralException, "101-2"},
}

var policy2004 = policy{
	initTwice:          fault{scormerr.AlreadyInitialized, "103-1"},
	initAfterTerm:      fault{scormerr.ContentInstanceTerminated, "104-1"},
	termBeforeInit:     fault{scormerr.TerminationBeforeInit, "112-1"},
	termAfterTerm:      fault{scormerr.TerminationAfterTermination, "113-1"},
	getBeforeInit:      fault{scormerr.RetrieveBeforeInit, "122-1"},
	getAfterTerm:       fault{scormerr.RetrieveAfterTermination, "123-1"},
	setBeforeInit:      fault{scormerr.StoreBeforeInit, "132-1"},
	setAfterTerm:       fault{scormerr.StoreAfterTermination, "133-1"},
	commitBeforeInit:   fault{scormerr.CommitBeforeInit, "142-1"},
	commitAfterTerm:    fault{scormerr.CommitAfterTermination, "143-1"},
	argNotEmpty:        fault{scormerr.GeneralArgumentError, "201-1"},
	argNotString:       fault{scormerr.GeneralArgumentError, "201-2"},
	getEmptyName:       fault{scormerr.GeneralGetFailure, "301-1"},
	setEmptyName:       fault{scormerr.GeneralSetFailure, "351-1"},
	getCount:           fault{scormerr.GeneralGetFailure, "301-2"},
	getChildren:        fault{scormerr.GeneralGetFailure, "301-3"},
	getVersion:         fault{scormerr.GeneralGetFailure, "301-6"},
	setCount:           fault{scormerr.GeneralSetFailure, "351-2"},
	setChildren:        fault{scormerr.GeneralSetFailure, "351-3"},
	setVersion:         fault{scormerr.GeneralSetFailure, "351-8"},
	getUndefined:       fault{scormerr.UndefinedElement, "401-1"},
	setUndefined:       fault{scormerr.UndefinedElement, "401-1"},
	writeOnly:          fault{scormerr.ElementWriteOnly, "405-1"},
	readOnly:           fault{scormerr.ElementReadOnly, "404-1"},
	keywordSet:         fault{scormerr.ElementReadOnly, "404-2"},
	getCollectionEmpty: fault{scormerr.GeneralGetFailure, "301-4"},
	getIndexRange:      fault{scormerr.GeneralGetFailure, "301-5"},
	setIndexRange:      fault{scormerr.GeneralSetFailure, "351-5"},
	notInitialized:     fault{scormerr.ValueNotInitialized, "403-1"},
	dependency:         fault{scormerr.DependencyNotEstablished, "408-1"},
	typeUnknown:        fault{scormerr.DependencyNotEstablished, "408-2"},
	typeMismatch:       fault{scormerr.TypeMismatch, "406-1"},
	notScalar:          fault{scormerr.TypeMismatch, "406-2"},
	outOfRange:         fault{scormerr.ValueOutOfRange, "407-1"},
	duplicatePattern:   fault{scormerr.GeneralSetFailure, "351-4"},
	patternIndex:       fault{scormerr.GeneralSetFailure, "351-6"},
	duplicateID:        fault{scormerr.GeneralSetFailure, "351-7"},
	commitFailed:       fault{scormerr.GeneralCommitFailure, "391-1"},
	termFailed:         fault{scormerr.GeneralTerminationFailure, "111-1"},
	internal:           fault{scormerr.GeneralException, "101-1"},
	unknownMethod:      fault{scormerr.GeneralException, "101-2"},
}
