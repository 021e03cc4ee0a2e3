package cli

// Version is stamped at build time with -ldflags "-X github.com/inedo/teamcity-cli.Version=<version>".
var Version = ""
