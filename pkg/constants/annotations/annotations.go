package annotations

// command annotations, used to group commands in help output
const (
	IsCore          = "isCore"
	IsConfiguration = "isConfiguration"
)
