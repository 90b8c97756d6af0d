package configs

import _ "embed"

// ApplicationYAML is the default properties file, used when PROPERTIES_FILE_PATH is not set.
//
//go:embed application.yml
var ApplicationYAML []byte

// MessagesYAML is the default messages file, used when MESSAGES_FILE_PATH is not set.
//
//go:embed messages.yml
var MessagesYAML []byte
