package core

import "github.com/dkeye/Poker/internal/domain"

// Reconciliation is the outcome of matching an incoming device against a room.
type Reconciliation struct {
	// Stale lists entries without a device id; they are purged on every join.
	Stale []domain.ConnID
	// Match is the connection key of the previous record for the same device.
	Match domain.ConnID
	// Inherited is the previous record, nil when nothing matched.
	Inherited *domain.Participant
}

// Matched reports whether an existing record was found for the device.
func (r Reconciliation) Matched() bool { return r.Inherited != nil }

// Reconcile decides merge-vs-create for a join. It does not mutate members.
// order fixes the scan order so the outcome is deterministic.
func Reconcile(order []domain.ConnID, members map[domain.ConnID]*domain.Participant, device domain.DeviceID) Reconciliation {
	var res Reconciliation
	for _, conn := range order {
		p, ok := members[conn]
		if !ok {
			continue
		}
		if p.DeviceID == "" {
			res.Stale = append(res.Stale, conn)
			continue
		}
		if device != "" && res.Inherited == nil && p.DeviceID == device {
			res.Match = conn
			res.Inherited = p
		}
	}
	return res
}

// Merge builds the record that replaces a reconciled one. The new record keeps
// the previous vote and persistent id and is always online.
func Merge(id domain.Identity, rec Reconciliation) *domain.Participant {
	p := domain.NewParticipant(id)
	if !rec.Matched() {
		return p
	}
	if rec.Inherited.Vote != nil {
		v := *rec.Inherited.Vote
		p.Vote = &v
	}
	if rec.Inherited.PersistentID != "" {
		p.PersistentID = rec.Inherited.PersistentID
	}
	MarkOnline(p)
	return p
}
