// Package inbox implements the fallback inbox: one directory per agent, one
// file per message, written atomically and never overwritten.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

// writeRetries bounds retry of transient filesystem errors before the write
// is declared lost.
const writeRetries = 3

const retryBackoff = 50 * time.Millisecond

// EntryFile is the serialized form of one inbox entry: the full message plus
// delivery metadata. The recipient-side processor consumes and deletes these.
type EntryFile struct {
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"body"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	DeliveredAt time.Time `json:"delivered_at"`
	Reason      string    `json:"reason,omitempty"`
}

// Writer implements secondary.InboxWriter on the local filesystem.
type Writer struct {
	root string
}

// NewWriter creates an inbox writer rooted at the given directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Dir returns the inbox directory for one recipient.
func (w *Writer) Dir(recipientID string) string {
	return filepath.Join(w.root, recipientID)
}

// Write implements secondary.InboxWriter. The filename combines the delivery
// timestamp, the message ID and a random suffix, so repeated writes of the
// same message produce distinct entries and history is preserved for audit.
func (w *Writer) Write(ctx context.Context, msg *models.Message, recipientID string, meta secondary.InboxMeta) (*secondary.InboxEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &secondary.InboxWriteError{RecipientID: recipientID, Cause: err}
	}

	entry := EntryFile{
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: recipientID,
		Body:        msg.Body,
		Priority:    string(msg.Priority),
		Tags:        msg.Tags,
		CreatedAt:   msg.CreatedAt,
		DeliveredAt: time.Now().UTC(),
		Reason:      meta.Reason,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return nil, &secondary.InboxWriteError{RecipientID: recipientID, Cause: err}
	}

	dir := w.Dir(recipientID)
	name := fmt.Sprintf("%s-%s-%s.json",
		entry.DeliveredAt.Format("20060102T150405.000"),
		shortID(msg.ID),
		uuid.NewString()[:8],
	)
	path := filepath.Join(dir, name)

	var lastErr error
	for attempt := 0; attempt < writeRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}
		if lastErr = os.MkdirAll(dir, 0755); lastErr != nil {
			continue
		}
		if lastErr = writeAtomic(dir, path, data); lastErr == nil {
			return &secondary.InboxEntry{Path: path, MessageID: msg.ID, RecipientID: recipientID}, nil
		}
	}
	return nil, &secondary.InboxWriteError{RecipientID: recipientID, Cause: lastErr}
}

// List implements secondary.InboxWriter, newest entries first.
func (w *Writer) List(ctx context.Context, recipientID string) ([]*secondary.InboxEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := w.Dir(recipientID)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox %s: %w", dir, err)
	}

	var entries []*secondary.InboxEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, f.Name())
		ef, err := ReadEntryFile(path)
		if err != nil {
			// Skip partially understood files rather than failing the listing.
			continue
		}
		entries = append(entries, &secondary.InboxEntry{
			Path:        path,
			MessageID:   ef.MessageID,
			RecipientID: recipientID,
		})
	}

	// Filenames start with the delivery timestamp.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path > entries[j].Path })
	return entries, nil
}

// ReadEntryFile parses one inbox entry from disk.
func ReadEntryFile(path string) (*EntryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry EntryFile
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse inbox entry %s: %w", path, err)
	}
	return &entry, nil
}

// writeAtomic writes to a temp file in the same directory and renames into
// place, so a reader never sees a partial entry.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
