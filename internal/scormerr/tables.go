package scormerr

// Entry is one error code: the standard message and its diagnostic templates keyed
// "<code>-<n>". Templates use {0}, {1}, {2} placeholders.
type Entry struct {
	Message     string
	Diagnostics map[string]string
}

type Table map[Code]Entry

var Table2004 = Table{
	NoError: {Message: "No Error"},
	GeneralException: {Message: "General Exception", Diagnostics: map[string]string{
		"101-1": "An internal error occurred while processing {0}.",
		"101-2": "The method {0} is not part of the API.",
	}},
	GeneralInitializationFailure: {Message: "General Initialization Failure"},
	AlreadyInitialized: {Message: "Already Initialized", Diagnostics: map[string]string{
		"103-1": "Initialize was called after the session was already initialized.",
	}},
	ContentInstanceTerminated: {Message: "Content Instance Terminated", Diagnostics: map[string]string{
		"104-1": "Initialize was called after the session was terminated.",
	}},
	GeneralTerminationFailure: {Message: "General Termination Failure", Diagnostics: map[string]string{
		"111-1": "The data model could not be handed to the LMS on Terminate.",
	}},
	TerminationBeforeInit: {Message: "Termination Before Initialization", Diagnostics: map[string]string{
		"112-1": "Terminate was called before Initialize.",
	}},
	TerminationAfterTermination: {Message: "Termination After Termination", Diagnostics: map[string]string{
		"113-1": "Terminate was called after the session was terminated.",
	}},
	RetrieveBeforeInit: {Message: "Retrieve Data Before Initialization", Diagnostics: map[string]string{
		"122-1": "{0}({1}) was called before Initialize.",
	}},
	RetrieveAfterTermination: {Message: "Retrieve Data After Termination", Diagnostics: map[string]string{
		"123-1": "{0}({1}) was called after Terminate.",
	}},
	StoreBeforeInit: {Message: "Store Data Before Initialization", Diagnostics: map[string]string{
		"132-1": "{0}({1}) was called before Initialize.",
	}},
	StoreAfterTermination: {Message: "Store Data After Termination", Diagnostics: map[string]string{
		"133-1": "{0}({1}) was called after Terminate.",
	}},
	CommitBeforeInit: {Message: "Commit Before Initialization", Diagnostics: map[string]string{
		"142-1": "Commit was called before Initialize.",
	}},
	CommitAfterTermination: {Message: "Commit After Termination", Diagnostics: map[string]string{
		"143-1": "Commit was called after Terminate.",
	}},
	GeneralArgumentError: {Message: "General Argument Error", Diagnostics: map[string]string{
		"201-1": "The parameter passed to {0} must be an empty string.",
		"201-2": "The parameter passed to {0} must be a string.",
	}},
	GeneralGetFailure: {Message: "General Get Failure", Diagnostics: map[string]string{
		"301-1": "GetValue was called with an empty element name.",
		"301-2": "The element {0} does not have a _count.",
		"301-3": "The element {0} does not have _children.",
		"301-4": "The collection {1} has not been initialized; {0} cannot be read.",
		"301-5": "The index of {0} is out of range; {1} has {2} entries.",
		"301-6": "The element {0} does not have a _version.",
	}},
	GeneralSetFailure: {Message: "General Set Failure", Diagnostics: map[string]string{
		"351-1": "SetValue was called with an empty element name.",
		"351-2": "The element {0} does not have a _count.",
		"351-3": "The element {0} does not have _children.",
		"351-4": "The correct response pattern {1} is already defined for {0}.",
		"351-5": "The index of {0} is out of range; {1} has {2} entries.",
		"351-6": "Only correct_responses.0 may be set for a {2} interaction.",
		"351-7": "The identifier {1} is already used in {2}.",
		"351-8": "The element {0} does not have a _version.",
	}},
	GeneralCommitFailure: {Message: "General Commit Failure", Diagnostics: map[string]string{
		"391-1": "The data model could not be handed to the LMS.",
	}},
	UndefinedElement: {Message: "Undefined Data Model Element", Diagnostics: map[string]string{
		"401-1": "The element {0} is not defined.",
	}},
	UnimplementedElement: {Message: "Unimplemented Data Model Element"},
	ValueNotInitialized: {Message: "Data Model Element Value Not Initialized", Diagnostics: map[string]string{
		"403-1": "The element {0} has not been set.",
	}},
	ElementReadOnly: {Message: "Data Model Element Is Read Only", Diagnostics: map[string]string{
		"404-1": "The element {0} is read only.",
		"404-2": "The element {0} is a keyword and cannot be set.",
	}},
	ElementWriteOnly: {Message: "Data Model Element Is Write Only", Diagnostics: map[string]string{
		"405-1": "The element {0} is write only.",
	}},
	TypeMismatch: {Message: "Data Model Element Type Mismatch", Diagnostics: map[string]string{
		"406-1": "The value {1} is not a valid {2} for {0}.",
		"406-2": "The value for {0} must be a string, number or boolean.",
	}},
	ValueOutOfRange: {Message: "Data Model Element Value Out Of Range", Diagnostics: map[string]string{
		"407-1": "The value {1} is out of range for {0}.",
	}},
	DependencyNotEstablished: {Message: "Data Model Dependency Not Established", Diagnostics: map[string]string{
		"408-1": "The element {1} must be set before {0}.",
		"408-2": "The type of {0} cannot be determined until {1} is set.",
	}},
}

var Table12 = Table{
	NoError: {Message: "No error"},
	LMSGeneralException: {Message: "General exception", Diagnostics: map[string]string{
		"101-1": "An internal error occurred while processing {0}.",
		"101-2": "The method {0} is not part of the API.",
		"101-3": "LMSInitialize was called after the session was already initialized.",
		"101-4": "LMSInitialize was called after LMSFinish.",
		"101-5": "The data model could not be handed to the LMS.",
	}},
	LMSInvalidArgument: {Message: "Invalid argument error", Diagnostics: map[string]string{
		"201-1": "The parameter passed to {0} must be an empty string.",
		"201-2": "The parameter passed to {0} must be a string.",
		"201-3": "The element {0} is not defined.",
		"201-4": "The index of {0} is out of range; {1} has {2} entries.",
		"201-5": "The element name must not be empty.",
	}},
	LMSCannotHaveChildren: {Message: "Element cannot have children", Diagnostics: map[string]string{
		"202-1": "The element {0} does not have _children.",
	}},
	LMSNotAnArray: {Message: "Element not an array. Cannot have count.", Diagnostics: map[string]string{
		"203-1": "The element {0} does not have a _count.",
	}},
	LMSNotInitialized: {Message: "Not initialized", Diagnostics: map[string]string{
		"301-1": "{0} was called before LMSInitialize.",
		"301-2": "{0} was called after LMSFinish.",
	}},
	LMSNotImplemented: {Message: "Not implemented error", Diagnostics: map[string]string{
		"401-1": "The element {0} does not have a _version.",
	}},
	LMSElementIsKeyword: {Message: "Invalid set value, element is a keyword", Diagnostics: map[string]string{
		"402-1": "The element {0} is a keyword and cannot be set.",
	}},
	LMSElementReadOnly: {Message: "Element is read only", Diagnostics: map[string]string{
		"403-1": "The element {0} is read only.",
	}},
	LMSElementWriteOnly: {Message: "Element is write only", Diagnostics: map[string]string{
		"404-1": "The element {0} is write only.",
	}},
	LMSIncorrectDataType: {Message: "Incorrect Data Type", Diagnostics: map[string]string{
		"405-1": "The value {1} is not a valid {2} for {0}.",
		"405-2": "The value for {0} must be a string, number or boolean.",
		"405-3": "The value {1} is out of range for {0}.",
		"405-4": "The element {1} must be set before {0}.",
	}},
}
