package apirecordsv1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fulldump/dataform/journal"
)

type historyEntry struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func history(ctx context.Context) ([]*historyEntry, error) {

	commands, err := GetServicer(ctx).History()
	if err != nil {
		return nil, err
	}

	return newHistoryEntries(commands), nil
}

func newHistoryEntries(commands []*journal.Command) []*historyEntry {
	result := make([]*historyEntry, len(commands))
	for i, command := range commands {
		result[i] = &historyEntry{
			Name:      command.Name,
			Uuid:      command.Uuid,
			Timestamp: command.Time().UTC(),
			Payload:   json.RawMessage(command.Payload),
		}
	}
	return result
}
