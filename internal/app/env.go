package app

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// LoadEnvFiles reads dotenv files of KEY=VALUE pairs into the process
// environment so `pagesum` picks up API keys without flags. Later files win
// on conflict; missing files are skipped. No variable expansion is done.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if key, val, ok := parseEnvLine(scanner.Text()); ok {
				_ = os.Setenv(key, val)
			}
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// parseEnvLine handles blank lines, # comments, an optional leading
// "export ", and single or double quotes around the value. Malformed lines
// report ok=false and are skipped.
func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:eq])
	val = strings.TrimSpace(line[eq+1:])
	if len(val) >= 2 {
		if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
			val = val[1 : len(val)-1]
		}
	}
	return key, val, key != ""
}
