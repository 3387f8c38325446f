package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/tendalyze/internal/domain/drive"
	"github.com/riskibarqy/tendalyze/internal/domain/game"
	"github.com/riskibarqy/tendalyze/internal/domain/ingestion"
	"github.com/riskibarqy/tendalyze/internal/domain/play"
	"github.com/riskibarqy/tendalyze/internal/domain/team"
)

// Store keeps the whole dataset in process. A transaction works on a private
// copy that replaces the committed data on Commit, and only one transaction
// runs at a time.
type Store struct {
	txMu sync.Mutex

	mu   sync.RWMutex
	data dataset
}

type dataset struct {
	teams  []team.Team
	games  []game.Game
	drives []drive.Drive
	plays  []play.Play

	nextTeamID  int64
	nextGameID  int64
	nextDriveID int64
	nextPlayID  int64
}

func NewStore(teams ...team.Team) *Store {
	s := &Store{}
	for _, item := range teams {
		s.data.nextTeamID++
		item.ID = s.data.nextTeamID
		s.data.teams = append(s.data.teams, item)
	}
	return s
}

func (d dataset) clone() dataset {
	out := d
	out.teams = append([]team.Team(nil), d.teams...)
	out.games = append([]game.Game(nil), d.games...)
	out.drives = append([]drive.Drive(nil), d.drives...)
	out.plays = append([]play.Play(nil), d.plays...)
	return out
}

func (s *Store) Begin(ctx context.Context) (ingestion.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.txMu.Lock()
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	return &Tx{store: s, data: work}, nil
}

func (s *Store) snapshot() dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

type Tx struct {
	store *Store
	data  dataset
	done  bool
}

func (t *Tx) Commit() error {
	if t.done {
		return ingestion.ErrTxDone
	}
	t.done = true

	t.store.mu.Lock()
	t.store.data = t.data
	t.store.mu.Unlock()
	t.store.txMu.Unlock()
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

// active guards every command: after Commit the working copy shares backing
// arrays with the committed data.
func (t *Tx) active() error {
	if t.done {
		return ingestion.ErrTxDone
	}
	return nil
}

func (t *Tx) FindTeamByName(_ context.Context, name string) (int64, bool, error) {
	if err := t.active(); err != nil {
		return 0, false, err
	}
	for _, item := range t.data.teams {
		if item.Name == name {
			return item.ID, true, nil
		}
	}
	return 0, false, nil
}

func (t *Tx) InsertTeam(_ context.Context, item team.Team) (int64, error) {
	if err := t.active(); err != nil {
		return 0, err
	}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if t.conflicts(item) {
		return 0, fmt.Errorf("duplicate team %q", item.Name)
	}
	return t.appendTeam(item), nil
}

func (t *Tx) InsertTeamIfAbsent(_ context.Context, item team.Team) (bool, error) {
	if err := t.active(); err != nil {
		return false, err
	}
	if err := item.Validate(); err != nil {
		return false, err
	}
	if t.conflicts(item) {
		return false, nil
	}
	t.appendTeam(item)
	return true, nil
}

// conflicts mirrors a unique (name, city, state) constraint where NULLs never compare equal.
func (t *Tx) conflicts(item team.Team) bool {
	if item.City == nil || item.State == nil {
		return false
	}
	for _, existing := range t.data.teams {
		if existing.City == nil || existing.State == nil {
			continue
		}
		if existing.Name == item.Name && *existing.City == *item.City && *existing.State == *item.State {
			return true
		}
	}
	return false
}

func (t *Tx) appendTeam(item team.Team) int64 {
	t.data.nextTeamID++
	item.ID = t.data.nextTeamID
	t.data.teams = append(t.data.teams, item)
	return item.ID
}

func (t *Tx) FindGame(_ context.Context, key game.Key) (int64, bool, error) {
	if err := t.active(); err != nil {
		return 0, false, err
	}
	for _, item := range t.data.games {
		if item.Season == nil || item.Week == nil {
			continue
		}
		if *item.Season == key.Season && *item.Week == key.Week &&
			item.OffenseTeamID == key.OffenseTeamID && item.DefenseTeamID == key.DefenseTeamID {
			return item.ID, true, nil
		}
	}
	return 0, false, nil
}

func (t *Tx) InsertGame(_ context.Context, item game.Game) (int64, error) {
	if err := t.active(); err != nil {
		return 0, err
	}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if !t.hasTeam(item.OffenseTeamID) || !t.hasTeam(item.DefenseTeamID) {
		return 0, fmt.Errorf("%w: game offense=%d defense=%d references unknown team",
			ingestion.ErrUnknownReference, item.OffenseTeamID, item.DefenseTeamID)
	}

	t.data.nextGameID++
	item.ID = t.data.nextGameID
	t.data.games = append(t.data.games, item)
	return item.ID, nil
}

func (t *Tx) InsertDrive(_ context.Context, item drive.Drive) (int64, error) {
	if err := t.active(); err != nil {
		return 0, err
	}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if !t.hasGame(item.GameID) {
		return 0, fmt.Errorf("%w: drive references unknown game %d", ingestion.ErrUnknownReference, item.GameID)
	}

	t.data.nextDriveID++
	item.ID = t.data.nextDriveID
	t.data.drives = append(t.data.drives, item)
	return item.ID, nil
}

func (t *Tx) BulkInsertPlays(_ context.Context, items []play.Play) error {
	if err := t.active(); err != nil {
		return err
	}
	drives := make(map[int64]int64, len(t.data.drives))
	for _, item := range t.data.drives {
		drives[item.ID] = item.GameID
	}

	rows := make([]play.Play, 0, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("play %d: %w", idx, err)
		}
		gameID, ok := drives[item.DriveID]
		if !ok || gameID != item.GameID {
			return fmt.Errorf("%w: play %d references unknown drive %d", ingestion.ErrUnknownReference, idx, item.DriveID)
		}
		t.data.nextPlayID++
		item.ID = t.data.nextPlayID
		rows = append(rows, item)
	}

	t.data.plays = append(t.data.plays, rows...)
	return nil
}

func (t *Tx) hasTeam(id int64) bool {
	for _, item := range t.data.teams {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (t *Tx) hasGame(id int64) bool {
	for _, item := range t.data.games {
		if item.ID == id {
			return true
		}
	}
	return false
}
