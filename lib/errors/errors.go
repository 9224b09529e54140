package errors

var (
	InvalidThresholdPolicy   = NewError(100, "invalid threshold policy; number of nodes must be positive and faulty must not be negative")
	UnsafeThresholdPolicy    = NewError(101, "unsafe threshold policy; number of nodes must be greater than 3 * faulty")
	InvalidNodeIndex         = NewError(102, "invalid node index")
	InvalidInitialValue      = NewError(103, "invalid initial value; must be 0 or 1")
	InvalidFaultyNodes       = NewError(104, "number of faulty nodes exceeds the tolerated faulty")
	InvalidEnvelope          = NewError(105, "invalid envelope")
	UnknownMessageType       = NewError(106, "unknown message type")
	NodeIsFaulty             = NewError(107, "node is faulty")
	NodeIsKilled             = NewError(108, "node is killed")
	AlreadyStarted           = NewError(109, "node already started")
	NotReady                 = NewError(110, "participants are not ready")
	InvalidTransport         = NewError(111, "unknown transport")
	InvalidCodec             = NewError(112, "unknown codec")
	InvalidCoin              = NewError(113, "unknown coin")
	InvalidRound             = NewError(114, "invalid round")
	SupervisorAlreadyStarted = NewError(115, "supervisor already started")
	SupervisorClosed         = NewError(116, "supervisor is closed")
	EndpointNotFound         = NewError(117, "endpoint not found")
	SendFailed               = NewError(118, "failed to send envelope")
	InvalidStorage           = NewError(119, "invalid storage config")
	StorageCoreError         = NewError(120, "storage error")
	StorageRecordNotFound    = NewError(121, "record does not exist")
	StorageRecordExists      = NewError(122, "record already exists")
	Interrupted              = NewError(123, "interrupted")
)
