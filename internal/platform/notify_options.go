// Package platform sends desktop notifications through the host's native
// notification service.
package platform

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "QuaintPaint"

// Options configures how a notification is displayed.
type Options struct {
	// AppName is the sending application shown by notification centres.
	AppName string
	// IconPath, when non-empty, points to an image shown alongside the
	// notification where supported.
	IconPath string
	// TimeoutMillis is how long the notification stays up. Zero uses five
	// seconds. Only honoured on Linux.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis == 0 {
		return 5000
	}
	return o.TimeoutMillis
}
