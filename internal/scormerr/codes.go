package scormerr

import "strconv"

// Code is a SCORM error number as reported by GetLastError.
type Code int

func (c Code) String() string {
	return strconv.Itoa(int(c))
}

// ParseCode reads a code the way content passes it to GetErrorString.
func ParseCode(raw string) (Code, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return Code(n), true
}

const NoError Code = 0

// SCORM 2004 codes.
const (
	GeneralException             Code = 101
	GeneralInitializationFailure Code = 102
	AlreadyInitialized           Code = 103
	ContentInstanceTerminated    Code = 104
	GeneralTerminationFailure    Code = 111
	TerminationBeforeInit        Code = 112
	TerminationAfterTermination  Code = 113
	RetrieveBeforeInit           Code = 122
	RetrieveAfterTermination     Code = 123
	StoreBeforeInit              Code = 132
	StoreAfterTermination        Code = 133
	CommitBeforeInit             Code = 142
	CommitAfterTermination       Code = 143
	GeneralArgumentError         Code = 201
	GeneralGetFailure            Code = 301
	GeneralSetFailure            Code = 351
	GeneralCommitFailure         Code = 391
	UndefinedElement             Code = 401
	UnimplementedElement         Code = 402
	ValueNotInitialized          Code = 403
	ElementReadOnly              Code = 404
	ElementWriteOnly             Code = 405
	TypeMismatch                 Code = 406
	ValueOutOfRange              Code = 407
	DependencyNotEstablished     Code = 408
)

// SCORM 1.2 codes.
const (
	LMSGeneralException   Code = 101
	LMSInvalidArgument    Code = 201
	LMSCannotHaveChildren Code = 202
	LMSNotAnArray         Code = 203
	LMSNotInitialized     Code = 301
	LMSNotImplemented     Code = 401
	LMSElementIsKeyword   Code = 402
	LMSElementReadOnly    Code = 403
	LMSElementWriteOnly   Code = 404
	LMSIncorrectDataType  Code = 405
)
