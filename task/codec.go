package task

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// RecordExt is the file extension for serialized records.
const RecordExt = ".toml"

// EncodeTask serializes a task to its TOML record form.
// Unset optional fields are omitted from the output.
func EncodeTask(t Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return nil, fmt.Errorf("encode task %s: %w", t.ID, err)
	}
	return buf.Bytes(), nil
}

// DecodeTask parses a TOML task record. Records carrying keys that are not
// task fields are rejected so hand-edited files fail loudly when addressed
// directly; bulk loading skips them instead (see Store.LoadAll).
func DecodeTask(data []byte) (Task, error) {
	var t Task
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Task{}, fmt.Errorf("decode task record: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Task{}, fmt.Errorf("%w: %v", ErrUnknownField, undecoded)
	}
	return t, nil
}

// EncodeActiveTask serializes the active-task descriptor.
func EncodeActiveTask(a ActiveTask) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(a); err != nil {
		return nil, fmt.Errorf("encode active task: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeActiveTask parses the active-task descriptor.
func DecodeActiveTask(data []byte) (ActiveTask, error) {
	var a ActiveTask
	md, err := toml.Decode(string(data), &a)
	if err != nil {
		return ActiveTask{}, fmt.Errorf("decode active task record: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return ActiveTask{}, fmt.Errorf("%w: %v", ErrUnknownField, undecoded)
	}
	return a, nil
}
