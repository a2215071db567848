// Package backup dumps the database to JSON and restores it. The backup
// directory is a local git repository; every backup becomes a commit so
// earlier snapshots stay recoverable.
package backup

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"recallpad/internal/domain"
	"recallpad/internal/storage"
)

// FileName is the backup document inside the backup directory.
const FileName = "backup.json"

// Snapshot is the on-disk backup document.
type Snapshot struct {
	Items      []domain.Item      `json:"items"`
	Notes      []domain.Note      `json:"notes"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// Run dumps all three tables into dir/backup.json and commits the file into
// the git repository at dir, initializing the repository if needed.
func Run(db *storage.DB, dir string) error {
	snap, err := dump(db)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file %s: %w", path, err)
	}

	if err := commit(dir); err != nil {
		return err
	}

	slog.Info("backup complete",
		"path", path,
		"items", len(snap.Items),
		"notes", len(snap.Notes),
		"flashcards", len(snap.Flashcards),
	)
	return nil
}

// Restore reads dir/backup.json and re-inserts every row, preserving the
// stored dates. Intended for a freshly created database.
func Restore(db *storage.DB, dir string) error {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode backup file %s: %w", path, err)
	}

	for _, it := range snap.Items {
		if _, err := db.InsertItem(it.Name, it.Description, it.CreatedAt); err != nil {
			return fmt.Errorf("failed to restore item %q: %w", it.Name, err)
		}
	}
	for _, n := range snap.Notes {
		if err := db.RestoreNote(n); err != nil {
			return fmt.Errorf("failed to restore note %d: %w", n.ID, err)
		}
	}
	for _, c := range snap.Flashcards {
		if err := db.RestoreFlashcard(c); err != nil {
			return fmt.Errorf("failed to restore flashcard %d: %w", c.ID, err)
		}
	}

	slog.Info("restore complete",
		"items", len(snap.Items),
		"notes", len(snap.Notes),
		"flashcards", len(snap.Flashcards),
	)
	return nil
}

func dump(db *storage.DB) (*Snapshot, error) {
	items, err := db.ListItems()
	if err != nil {
		return nil, err
	}
	notes, _, err := db.ListNotes(storage.NoteQuery{}, -1, 0)
	if err != nil {
		return nil, err
	}
	cards, _, err := db.ListFlashcards(storage.CardQuery{}, -1, 0)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Items: items, Notes: notes, Flashcards: cards}, nil
}

// commit stages the backup file and commits it. An unchanged backup results
// in an empty commit, which keeps the history an honest record of runs.
func commit(dir string) error {
	repo, err := git.PlainOpen(dir)
	if err == git.ErrRepositoryNotExists {
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return fmt.Errorf("failed to open backup repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree for backup repository: %w", err)
	}
	if _, err := worktree.Add(FileName); err != nil {
		return fmt.Errorf("failed to stage backup file: %w", err)
	}

	msg := fmt.Sprintf("backup %s", time.Now().UTC().Format(time.RFC3339))
	_, err = worktree.Commit(msg, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name: "recallpad",
			When: time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit backup: %w", err)
	}
	return nil
}
