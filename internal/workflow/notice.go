package workflow

// NoticeLevel mirrors the severity tiers of the original toast dialogs.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible outcome of a workflow step. Handlers translate
// these into toast fragments; nothing in this package renders them.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

func infoNotice(title, msg string) *Notice {
	return &Notice{Level: NoticeInfo, Title: title, Message: msg}
}

func successNotice(title, msg string) *Notice {
	return &Notice{Level: NoticeSuccess, Title: title, Message: msg}
}

func warningNotice(title, msg string) *Notice {
	return &Notice{Level: NoticeWarning, Title: title, Message: msg}
}

func errorNotice(title, msg string) *Notice {
	return &Notice{Level: NoticeError, Title: title, Message: msg}
}

// Kind identifies which workflow a confirmation belongs to.
type Kind string

const (
	KindCreateMonth Kind = "create_month"
	KindCloneMonth  Kind = "clone_month"
)

// Prompt asks the user to confirm a pending workflow before any state is
// touched. Replace distinguishes "target month already exists, overwrite
// it" from a plain confirmation.
type Prompt struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	Replace bool
}
