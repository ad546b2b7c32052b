package version

// Version is overridden at build time with -ldflags "-X github.com/tristendillon/importfix/core/version.Version=..."
var Version = "dev"
