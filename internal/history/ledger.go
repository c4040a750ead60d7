package history

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/abhisek/repaso/internal/store"
)

// ErrStorageCorrupt marks a persisted value that could not be decoded.
// It is logged and the value is read as empty; callers never see it.
var ErrStorageCorrupt = errors.New("stored value is corrupt")

func historyKey(module string) string     { return "history:" + module }
func seenKey(module string) string        { return "seen:" + module }
func lastSessionKey(module string) string { return "lastSession:" + module }

// Ledger is the per-module answer history and seen set, persisted in a KV.
//
// Persistence is best effort. Read failures and corrupt values read as
// empty; write failures are logged and the value is kept in memory so the
// rest of the run still sees it.
type Ledger struct {
	kv  store.KV
	log zerolog.Logger

	// pending holds values whose last write failed, keyed like the KV.
	pending map[string]string
}

// New creates a Ledger over kv.
func New(kv store.KV, log zerolog.Logger) *Ledger {
	return &Ledger{
		kv:      kv,
		log:     log,
		pending: make(map[string]string),
	}
}

// RecordAnswer prepends e to the module's ledger and truncates it to
// MaxEntries. It never fails; see Ledger.
func (l *Ledger) RecordAnswer(ctx context.Context, module string, e Entry) {
	entries := l.Entries(ctx, module)
	entries = append([]Entry{e}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.write(ctx, historyKey(module), entries)
}

// Entries returns the module's ledger, most recent first.
func (l *Ledger) Entries(ctx context.Context, module string) []Entry {
	var entries []Entry
	if !l.read(ctx, historyKey(module), &entries) {
		return nil
	}
	return entries
}

// SubtopicWeights computes selection weights from the module's ledger.
func (l *Ledger) SubtopicWeights(ctx context.Context, module string) Weights {
	return ComputeWeights(l.Entries(ctx, module))
}

// Seen returns a copy of the module's seen set.
func (l *Ledger) Seen(ctx context.Context, module string) map[string]struct{} {
	var ids []string
	if !l.read(ctx, seenKey(module), &ids) {
		ids = nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// IsSeen reports whether id is in the module's seen set.
func (l *Ledger) IsSeen(ctx context.Context, module, id string) bool {
	_, ok := l.Seen(ctx, module)[id]
	return ok
}

// MarkSeen adds ids to the module's seen set.
func (l *Ledger) MarkSeen(ctx context.Context, module string, ids ...string) {
	if len(ids) == 0 {
		return
	}
	set := l.Seen(ctx, module)
	for _, id := range ids {
		set[id] = struct{}{}
	}
	l.write(ctx, seenKey(module), sortedIDs(set))
}

// ResetSeen empties the module's seen set.
func (l *Ledger) ResetSeen(ctx context.Context, module string) {
	l.write(ctx, seenKey(module), []string{})
}

// SaveLastSession replaces the module's last-session record.
func (l *Ledger) SaveLastSession(ctx context.Context, module string, rec SessionRecord) {
	l.write(ctx, lastSessionKey(module), rec)
}

// LastSession returns the module's last-session record. ok is false when
// no session has been recorded.
func (l *Ledger) LastSession(ctx context.Context, module string) (SessionRecord, bool) {
	var rec SessionRecord
	if !l.read(ctx, lastSessionKey(module), &rec) {
		return SessionRecord{}, false
	}
	return rec, true
}

// Reset clears the module's ledger, seen set and last-session record.
func (l *Ledger) Reset(ctx context.Context, module string) error {
	var errs []error
	for _, key := range []string{historyKey(module), seenKey(module), lastSessionKey(module)} {
		delete(l.pending, key)
		if err := l.kv.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// read decodes key into dst. It returns false if the key is absent,
// unreadable or corrupt; dst may then be partially filled and must be
// discarded.
func (l *Ledger) read(ctx context.Context, key string, dst any) bool {
	raw, ok := l.pending[key]
	if !ok {
		var err error
		raw, ok, err = l.kv.Get(ctx, key)
		if err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("history read failed; treating as empty")
			return false
		}
		if !ok {
			return false
		}
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		l.log.Warn().Err(errors.Join(ErrStorageCorrupt, err)).Str("key", key).Msg("discarding corrupt history value")
		return false
	}
	return true
}

func (l *Ledger) write(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		l.log.Error().Err(err).Str("key", key).Msg("encode history value")
		return
	}
	if err := l.kv.Set(ctx, key, string(b)); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("history write failed; keeping value for this run only")
		l.pending[key] = string(b)
		return
	}
	delete(l.pending, key)
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
