package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASISTEN_DEBUG") == "1"
}
