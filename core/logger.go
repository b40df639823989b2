package core

// Logger is any service that can log messages.
// args may hold errors, maps of extra data and the logged-in user.User.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Notifier shows transient messages ("toasts") to the user.
type Notifier interface {
	Success(title, desc string)
	Error(title, desc string)
}
