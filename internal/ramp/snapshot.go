package ramp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/models"
)

// snapshotTTL is how long a persisted snapshot stays restorable. Anything
// older is deleted on sight.
const snapshotTTL = 30 * time.Minute

// encodeSnapshot serializes a snapshot for storage. The blob is base64 over
// JSON — obfuscation against casual inspection, deliberately not AEAD: the
// snapshot holds no credentials and must survive a vault key rotation.
func encodeSnapshot(snap models.OrderSnapshot) (string, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// decodeSnapshot reverses encodeSnapshot. Any malformed blob reports false;
// the caller treats it as absent and deletes it.
func decodeSnapshot(blob string) (models.OrderSnapshot, bool) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return models.OrderSnapshot{}, false
	}
	var snap models.OrderSnapshot
	if err = json.Unmarshal(raw, &snap); err != nil {
		return models.OrderSnapshot{}, false
	}
	return snap, true
}

// persistSnapshot writes the current flow state under the snapshot record.
// Storage failures are logged and swallowed: losing recovery data must never
// break the live flow.
func (o *Orchestrator) persistSnapshot(ctx context.Context) {
	o.mu.Lock()
	snap := models.OrderSnapshot{
		Step:       o.stepLocked(),
		Quote:      o.quote,
		Settlement: o.settlement,
		FormFields: copyFields(o.fields),
		Timestamp:  o.clock().UnixMilli(),
	}
	o.mu.Unlock()

	blob, err := encodeSnapshot(snap)
	if err != nil {
		o.log.Err(err).Msg("error encoding order snapshot")
		return
	}
	if err = o.records.Put(ctx, store.RecordOrderSnapshot, blob); err != nil {
		o.log.Err(err).Msg("error persisting order snapshot")
	}
}

// deleteSnapshot removes the recovery record at terminal states.
func (o *Orchestrator) deleteSnapshot(ctx context.Context) {
	if err := o.records.Delete(ctx, store.RecordOrderSnapshot); err != nil {
		o.log.Err(err).Msg("error deleting order snapshot")
	}
}

func copyFields(fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
