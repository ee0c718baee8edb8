package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "player":
		return playerTemplate, nil
	case "lms":
		return lmsTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const playerTemplate = `name = "rtectl-player"
lms = "http://127.0.0.1:9300"
start_path = "/lms/frameset"
post_path = "/lms/post"
clear_url = "about:blank"
fetch_content = true
timeout = "10s"

[bridge]
addr = "127.0.0.1:9310"
cors_origins = ["http://127.0.0.1:9300"]
call_timeout = "5s"

[retry]
interval = "500ms"
multiplier = 1.0
max_attempts = 50

[log]
level = "info"
timestamp = true
`

const lmsTemplate = `name = "rtectl-lms"
addr = "127.0.0.1:9300"
cors_origins = ["http://127.0.0.1:9310"]
content_dir = ""

[course]
id = "sample-course"
learner_id = "learner-1"
learner_name = "Sample Learner"

[[course.activities]]
id = "intro"
title = "Introduction"
version = "2004"
rte_required = true

[[course.activities]]
id = "quiz"
title = "Quiz"
version = "2004"
rte_required = true
launch_data = "mode=quiz"

[[course.activities]]
id = "legacy"
title = "Legacy module"
version = "1.2"
rte_required = true

[log]
level = "info"
timestamp = true
`
