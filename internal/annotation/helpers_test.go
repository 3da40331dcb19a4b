package annotation

import "time"

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
