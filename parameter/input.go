package parameter

import "time"

// Terminals report key presses, never releases; a held action stays down
// this long after its last press or autorepeat
const KeyHoldWindow = 300 * time.Millisecond
