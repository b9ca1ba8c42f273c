package game

import (
	"fmt"
	"strings"
)

// SessionLogEntry is one recorded gameplay event.
type SessionLogEntry struct {
	Second   int     // ticker ticks elapsed when the event happened
	Frame    int     // update steps elapsed when the event happened
	Shape    string  // shape ID, or "--" for session-wide events
	Category string  // click, timer, difficulty, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value (score, timer, ...)
}

// String formats the entry as a fixed-width log line.
//
//	[S=012 F=00731] circle-3     click      remove         score 17
func (e SessionLogEntry) String() string {
	return fmt.Sprintf("[S=%03d F=%05d] %-12s %-10s %-14s %s",
		e.Second, e.Frame, e.Shape, e.Category, e.Key, e.Value)
}

// SessionLog collects gameplay events. It is unbounded and machine-readable;
// the headless report and the tests read it back.
type SessionLog struct {
	entries []SessionLogEntry
	verbose bool
}

// NewSessionLog creates a SessionLog. If verbose is true, per-tick entries
// are also recorded.
func NewSessionLog(verbose bool) *SessionLog {
	return &SessionLog{verbose: verbose}
}

func (sl *SessionLog) Add(second, frame int, shapeID, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SessionLogEntry{
		Second:   second,
		Frame:    frame,
		Shape:    shapeID,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SessionLog) AddVerbose(second, frame int, shapeID, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(second, frame, shapeID, category, key, value, numVal)
}

func (sl *SessionLog) Entries() []SessionLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SessionLog) Filter(category, key string) []SessionLogEntry {
	var out []SessionLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SessionLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SessionLog) LastOf(category, key string) (SessionLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SessionLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format returns the full log as a single string for t.Log output.
func (sl *SessionLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
