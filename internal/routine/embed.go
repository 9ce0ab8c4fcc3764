package routine

import _ "embed"

//go:embed schema/routine-v1.json
var Schema string
