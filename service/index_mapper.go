package service

// IndexMapper is the single translation point between a local
// candidate identity and the candidate's positional slot in one
// election's on-chain candidate array. The mapping is written once at
// election creation (position i = i-th submitted candidate) and is
// immutable afterwards, because the contract only ever addresses
// candidates by position. Every vote submission and every positional
// lookup must come through here rather than re-deriving order ad hoc.
type IndexMapper struct {
	store ElectionStore
}

func NewIndexMapper(store ElectionStore) *IndexMapper {
	return &IndexMapper{store: store}
}

// Position returns the on-chain slot for the candidate inside the
// election. found is false when the candidate was never attached to
// that election.
func (m *IndexMapper) Position(electionID, candidateID uint) (position int, found bool, err error) {
	return m.store.CandidatePosition(electionID, candidateID)
}
