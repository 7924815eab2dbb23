package journal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"

	"github.com/fulldump/dataform/record"
)

const (
	CommandAppend = "append"
	CommandDelete = "delete"
)

type Command struct {
	Name      string         `json:"name"`
	Uuid      string         `json:"uuid"`
	Timestamp int64          `json:"timestamp"`
	Payload   jsontext.Value `json:"payload"`
}

type AppendPayload struct {
	Record record.Record `json:"record"`
}

type DeletePayload struct {
	Index  int           `json:"index"`
	Record record.Record `json:"record"`
}

// Journal appends one JSON command per line. Like the record store it opens
// and closes the file on every write.
type Journal struct {
	Filename string
	now      func() time.Time
}

func New(filename string) *Journal {
	return &Journal{
		Filename: filename,
		now:      time.Now,
	}
}

func (j *Journal) Append(r record.Record) (*Command, error) {
	return j.write(CommandAppend, &AppendPayload{Record: r})
}

func (j *Journal) Delete(index int, r record.Record) (*Command, error) {
	return j.write(CommandDelete, &DeletePayload{Index: index, Record: r})
}

func (j *Journal) write(name string, payload interface{}) (*Command, error) {

	encodedPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: j.now().UnixNano(),
		Payload:   encodedPayload,
	}

	line, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("json encode command: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(j.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	_, err = f.Write(line)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("write journal: %w", err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close journal: %w", closeErr)
	}

	return command, nil
}

// Read returns every command of the journal in write order. A missing journal
// has no commands.
func Read(filename string) ([]*Command, error) {

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return []*Command{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	commands := []*Command{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		command := &Command{}
		err := json.Unmarshal(line, command)
		if err != nil {
			return nil, fmt.Errorf("decode journal line %d: %w", n, err)
		}
		commands = append(commands, command)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	return commands, nil
}

// Decode returns the typed payload of the command: *AppendPayload or
// *DeletePayload.
func (c *Command) Decode() (interface{}, error) {

	var payload interface{}
	switch c.Name {
	case CommandAppend:
		payload = &AppendPayload{}
	case CommandDelete:
		payload = &DeletePayload{}
	default:
		return nil, fmt.Errorf("unknown command '%s'", c.Name)
	}

	err := json.Unmarshal(c.Payload, payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", c.Name, err)
	}

	return payload, nil
}

func (c *Command) Time() time.Time {
	return time.Unix(0, c.Timestamp)
}
