package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

type startCall struct {
	title string
	names []string
}

type voteCall struct {
	electionID     uint64
	candidateIndex int
	voter          string
}

type fakeLedger struct {
	startID  uint64
	startErr error
	starts   []startCall

	endErr error
	ended  []uint64

	status    map[uint64]*ledger.ElectionStatus
	statusErr error

	results    map[uint64][]ledger.ResultEntry
	resultsErr error

	voted       map[string]bool
	hasVotedErr error

	winner    *ledger.Winner
	winnerErr error

	voteErr error
	votes   []voteCall
}

func votedKey(electionID uint64, address string) string {
	return fmt.Sprintf("%d:%s", electionID, strings.ToLower(address))
}

func (f *fakeLedger) StartElection(_ context.Context, title string, names []string) (uint64, error) {
	if f.startErr != nil {
		return 0, f.startErr
	}
	f.starts = append(f.starts, startCall{title: title, names: names})
	return f.startID, nil
}

func (f *fakeLedger) EndElection(_ context.Context, electionID uint64) error {
	if f.endErr != nil {
		return f.endErr
	}
	f.ended = append(f.ended, electionID)
	return nil
}

func (f *fakeLedger) GetStatus(_ context.Context, electionID uint64) (*ledger.ElectionStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status[electionID], nil
}

func (f *fakeLedger) GetResults(_ context.Context, electionID uint64) ([]ledger.ResultEntry, error) {
	if f.resultsErr != nil {
		return nil, f.resultsErr
	}
	return f.results[electionID], nil
}

func (f *fakeLedger) HasVoted(_ context.Context, electionID uint64, address string) (bool, error) {
	if f.hasVotedErr != nil {
		return false, f.hasVotedErr
	}
	return f.voted[votedKey(electionID, address)], nil
}

func (f *fakeLedger) GetWinner(_ context.Context, _ uint64) (*ledger.Winner, error) {
	if f.winnerErr != nil {
		return nil, f.winnerErr
	}
	return f.winner, nil
}

func (f *fakeLedger) VoteFor(_ context.Context, electionID uint64, candidateIndex int, voter string) error {
	if f.voteErr != nil {
		return f.voteErr
	}
	f.votes = append(f.votes, voteCall{electionID: electionID, candidateIndex: candidateIndex, voter: voter})
	return nil
}

type fakeElectionStore struct {
	elections []models.Election
	positions map[string]int
	receipts  int
	nextID    uint

	createErr  error
	markErr    error
	byChainErr error
	receiptErr error
}

func newFakeElectionStore() *fakeElectionStore {
	return &fakeElectionStore{positions: make(map[string]int), nextID: 1}
}

func posKey(electionID, candidateID uint) string {
	return fmt.Sprintf("%d/%d", electionID, candidateID)
}

func (f *fakeElectionStore) CreateElection(election *models.Election, candidateIDs []uint) error {
	if f.createErr != nil {
		return f.createErr
	}
	election.ID = f.nextID
	f.nextID++
	for i, id := range candidateIDs {
		f.positions[posKey(election.ID, id)] = i
	}
	f.elections = append(f.elections, *election)
	return nil
}

func (f *fakeElectionStore) ElectionByOnChainID(onChainID uint64) (*models.Election, error) {
	if f.byChainErr != nil {
		return nil, f.byChainErr
	}
	for i := range f.elections {
		if f.elections[i].OnChainID == onChainID {
			e := f.elections[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeElectionStore) ElectionByID(id uint) (*models.Election, error) {
	for i := range f.elections {
		if f.elections[i].ID == id {
			e := f.elections[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeElectionStore) Elections() ([]models.Election, error) {
	return f.elections, nil
}

func (f *fakeElectionStore) FinalizedElections() ([]models.Election, error) {
	var out []models.Election
	for _, e := range f.elections {
		if e.Finalized {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeElectionStore) MarkElectionFinalized(id uint) error {
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.elections {
		if f.elections[i].ID == id {
			f.elections[i].Finalized = true
			return nil
		}
	}
	return nil
}

func (f *fakeElectionStore) CandidatePosition(electionID, candidateID uint) (int, bool, error) {
	pos, ok := f.positions[posKey(electionID, candidateID)]
	return pos, ok, nil
}

func (f *fakeElectionStore) ElectionCandidates(uint) ([]models.ElectionCandidate, error) {
	return nil, nil
}

func (f *fakeElectionStore) CreateVoteReceipt(uint) error {
	if f.receiptErr != nil {
		return f.receiptErr
	}
	f.receipts++
	return nil
}

type fakeCandidateStore struct {
	candidates map[uint]models.Candidate
}

func (f *fakeCandidateStore) CreateCandidate(candidate *models.Candidate) error {
	if f.candidates == nil {
		f.candidates = make(map[uint]models.Candidate)
	}
	candidate.ID = uint(len(f.candidates) + 1)
	f.candidates[candidate.ID] = *candidate
	return nil
}

func (f *fakeCandidateStore) Candidates() ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(f.candidates))
	for _, c := range f.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCandidateStore) CandidateByID(id uint) (*models.Candidate, error) {
	if c, ok := f.candidates[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCandidateStore) CandidatesByIDs(ids []uint) (map[uint]models.Candidate, error) {
	out := make(map[uint]models.Candidate, len(ids))
	for _, id := range ids {
		if c, ok := f.candidates[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

type fakeVoterStore struct {
	voters    map[string]*models.Voter
	nonceErr  error
	createErr error
}

func newFakeVoterStore() *fakeVoterStore {
	return &fakeVoterStore{voters: make(map[string]*models.Voter)}
}

func (f *fakeVoterStore) CreateVoter(voter *models.Voter) error {
	if f.createErr != nil {
		return f.createErr
	}
	voter.ID = uint(len(f.voters) + 1)
	stored := *voter
	f.voters[strings.ToLower(voter.Wallet)] = &stored
	return nil
}

func (f *fakeVoterStore) VoterByWallet(wallet string) (*models.Voter, error) {
	if v, ok := f.voters[strings.ToLower(wallet)]; ok {
		out := *v
		return &out, nil
	}
	return nil, nil
}

func (f *fakeVoterStore) VoterByCedula(cedula string) (*models.Voter, error) {
	for _, v := range f.voters {
		if v.Cedula == cedula {
			out := *v
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeVoterStore) SetVoterNonce(voterID uint, nonce *string) error {
	if f.nonceErr != nil {
		return f.nonceErr
	}
	for _, v := range f.voters {
		if v.ID == voterID {
			v.Nonce = nonce
			return nil
		}
	}
	return nil
}

type fakeAttestationStore struct {
	rows      []models.ElectionSignature
	createErr error
}

func attKey(onChainID uint64, hash, key string) string {
	return fmt.Sprintf("%d/%s/%s", onChainID, hash, key)
}

func (f *fakeAttestationStore) AttestationExists(onChainID uint64, hash, observerKey string) (bool, error) {
	for _, r := range f.rows {
		if attKey(r.ElectionOnChainID, r.IntegrityHash, r.ObserverPublicKey) == attKey(onChainID, hash, observerKey) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttestationStore) CreateAttestation(signature *models.ElectionSignature) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows = append(f.rows, *signature)
	return nil
}

func (f *fakeAttestationStore) AttestationsByElection(onChainID uint64) ([]models.ElectionSignature, error) {
	var out []models.ElectionSignature
	for _, r := range f.rows {
		if r.ElectionOnChainID == onChainID {
			out = append(out, r)
		}
	}
	return out, nil
}
