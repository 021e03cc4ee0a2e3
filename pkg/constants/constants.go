package constants

const (
	ExecutableName = "teamcity"
)

// flags for command line switches
const (
	FlagHelp         = "help"
	FlagOutputFormat = "output-format"
	FlagNoPrompt     = "no-prompt"
	FlagVerbose      = "verbose"
)

const (
	OutputFormatTable = "table"
	OutputFormatJson  = "json"
	OutputFormatBasic = "basic"
)

// keys in the config file, matched case-insensitively
const (
	ConfigServer                = "Server"
	ConfigUserName              = "UserName"
	ConfigPassword              = "Password"
	ConfigDefaultBranch         = "DefaultBranch"
	ConfigNoPrompt              = "NoPrompt"
	ConfigOutputFormat          = "OutputFormat"
	ConfigVerbose               = "Verbose"
	ConfigPollInterval          = "PollInterval"
	ConfigArtifactRoot          = "ArtifactRoot"
	ConfigEnableServiceMessages = "EnableServiceMessages"
	ConfigIgnoreSslErrors       = "IgnoreSslErrors"
)

const (
	EnvTeamCityServer        = "TEAMCITY_SERVER"
	EnvTeamCityUserName      = "TEAMCITY_USERNAME"
	EnvTeamCityPassword      = "TEAMCITY_PASSWORD"
	EnvTeamCityDefaultBranch = "TEAMCITY_DEFAULT_BRANCH"
	EnvTeamCityPollInterval  = "TEAMCITY_POLL_INTERVAL"
	EnvTeamCityArtifactRoot  = "TEAMCITY_ARTIFACT_ROOT"
	EnvTeamCityIgnoreSsl     = "TEAMCITY_IGNORE_SSL_ERRORS"
	// set by TeamCity on its own agents
	EnvTeamCityVersion = "TEAMCITY_VERSION"
	EnvCI              = "CI"
)

// BuildNumberVariable is the output variable carrying the build number an artifact was imported from.
const BuildNumberVariable = "TeamCityBuildNumber"
