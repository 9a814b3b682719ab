package main

import "os"

func writeConfig(name, body string) error {
	return os.WriteFile(name, []byte(body), 0o600)
}
