package model

type ChangeType int

const (
	ChangeUnknown ChangeType = iota
	ChangeAdd
	ChangeCopy
	ChangeRename
	ChangeDelete
	ChangeModify
)

func (t ChangeType) String() string {
	switch t {
	case ChangeAdd:
		return "ADD"
	case ChangeCopy:
		return "COPY"
	case ChangeRename:
		return "RENAME"
	case ChangeDelete:
		return "DELETE"
	case ChangeModify:
		return "MODIFY"
	default:
		return "UNKNOWN"
	}
}
