package version

// Version is overridden at link time with -ldflags "-X readprep/internal/version.Version=...".
var Version = "0.3.0-dev"
