package entity

type ActionKind string

const (
	ActionClick   ActionKind = "click"
	ActionWrite   ActionKind = "write"
	ActionExecute ActionKind = "execute"
	ActionGet     ActionKind = "get"
	ActionScroll  ActionKind = "scroll"
	ActionWait    ActionKind = "wait"
)

// ActionKinds lists every kind the dispatcher accepts.
var ActionKinds = []ActionKind{
	ActionClick,
	ActionWrite,
	ActionExecute,
	ActionGet,
	ActionScroll,
	ActionWait,
}

func (k ActionKind) String() string {
	return string(k)
}

func (k ActionKind) Valid() bool {
	switch k {
	case ActionClick, ActionWrite, ActionExecute, ActionGet, ActionScroll, ActionWait:
		return true
	}
	return false
}

type CommandDescriptor struct {
	Action ActionKind     `json:"action" yaml:"action"`
	Args   map[string]any `json:"args" yaml:"args"`
}

type LocatorStrategy string

const (
	LocateByCSS       LocatorStrategy = "css selector"
	LocateByID        LocatorStrategy = "id"
	LocateByXPath     LocatorStrategy = "xpath"
	LocateByName      LocatorStrategy = "name"
	LocateByClassName LocatorStrategy = "class name"
	LocateByTagName   LocatorStrategy = "tag name"
	LocateByLinkText  LocatorStrategy = "link text"
)

func (s LocatorStrategy) Valid() bool {
	switch s {
	case LocateByCSS, LocateByID, LocateByXPath, LocateByName,
		LocateByClassName, LocateByTagName, LocateByLinkText:
		return true
	}
	return false
}
