package mazewalk

// Version is the release of the library and the CLI.
const Version = "0.3.0"
