package errorx

type Code uint64

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008

	// Reward codes
	MembershipRequired Code = 200001
	AlreadyClaimed     Code = 200002
	AlreadyReferred    Code = 200003
	InvalidCode        Code = 200004
	SelfReferral       Code = 200005
	AlreadyReviewed    Code = 200006
	InvalidAction      Code = 200007

	// Proof submission codes
	EmptyFile        Code = 300001
	FileTooLarge     Code = 300002
	InvalidExtension Code = 300003
	InvalidImage     Code = 300004
)
