// Package config loads the server and apidocs settings.
//
// Sources are merged field by field and the first source that sets a field
// wins: environment variables, then command-line flags, then the JSON file
// named by CONFIG, -c or -config. Defaults fill whatever is still empty and
// the result is validated before use.
package config
