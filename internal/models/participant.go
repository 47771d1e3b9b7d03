package models

type Participant struct {
	ConnectionId string `json:"id"`
	DisplayName  string `json:"name"`
}

// Roster keeps participants keyed by connection id in join order.
type Roster struct {
	order []string
	byId  map[string]Participant
}

func NewRoster() *Roster {
	return &Roster{byId: make(map[string]Participant)}
}

// Put adds p, or renames it in place if the connection is already present.
func (r *Roster) Put(p Participant) {
	if _, ok := r.byId[p.ConnectionId]; !ok {
		r.order = append(r.order, p.ConnectionId)
	}
	r.byId[p.ConnectionId] = p
}

func (r *Roster) Has(connId string) bool {
	_, ok := r.byId[connId]
	return ok
}

func (r *Roster) Remove(connId string) bool {
	if _, ok := r.byId[connId]; !ok {
		return false
	}
	delete(r.byId, connId)
	for i, id := range r.order {
		if id == connId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Roster) Len() int {
	return len(r.order)
}

func (r *Roster) Ids() []string {
	return append([]string(nil), r.order...)
}

// List returns a copy of the participants in join order.
func (r *Roster) List() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byId[id])
	}
	return out
}
