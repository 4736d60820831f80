package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/ledger"
	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

const voterWallet = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"

// votingFixture wires a mirrored election (on-chain id 5, candidates
// 1 and 2 at positions 0 and 1) with an active contract status.
func votingFixture(t *testing.T) (*fakeElectionStore, *fakeLedger, *VoteService) {
	t.Helper()
	store := newFakeElectionStore()
	require.NoError(t, store.CreateElection(&models.Election{Title: "Junta", OnChainID: 5, Started: true}, []uint{1, 2}))

	chain := &fakeLedger{
		status: map[uint64]*ledger.ElectionStatus{
			5: {Title: "Junta", Started: true, CandidateCount: 2},
		},
		voted: make(map[string]bool),
	}
	svc := NewVoteService(store, NewIndexMapper(store), chain, nil, zap.NewNop(), SubmitModeBackend)
	return store, chain, svc
}

func requireVoteError(t *testing.T, err error, status int, title string) {
	t.Helper()
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, status, svcErr.Status)
	assert.Equal(t, title, svcErr.Title)
}

func TestSubmitHappyPath(t *testing.T) {
	store, chain, svc := votingFixture(t)

	require.NoError(t, svc.Submit(context.Background(), models.RoleVoter, voterWallet, 2, 5))

	require.Len(t, chain.votes, 1)
	assert.Equal(t, uint64(5), chain.votes[0].electionID)
	assert.Equal(t, 1, chain.votes[0].candidateIndex, "candidate 2 sits at position 1")
	assert.Equal(t, voterWallet, chain.votes[0].voter)
	assert.Equal(t, 1, store.receipts)
}

func TestSubmitRejectsNonVoterRoles(t *testing.T) {
	_, chain, svc := votingFixture(t)

	err := svc.Submit(context.Background(), models.RoleAdmin, voterWallet, 1, 5)
	requireVoteError(t, err, 403, "Solo los votantes pueden emitir votos.")

	err = svc.Submit(context.Background(), models.RoleObserver, voterWallet, 1, 5)
	requireVoteError(t, err, 403, "Solo los votantes pueden emitir votos.")
	assert.Empty(t, chain.votes)
}

func TestSubmitRequiresWalletAndCandidate(t *testing.T) {
	_, _, svc := votingFixture(t)

	err := svc.Submit(context.Background(), models.RoleVoter, "", 1, 5)
	requireVoteError(t, err, 400, "Faltan datos.")

	err = svc.Submit(context.Background(), models.RoleVoter, voterWallet, 0, 5)
	requireVoteError(t, err, 400, "Faltan datos.")
}

func TestSubmitUnknownLocalElection(t *testing.T) {
	_, _, svc := votingFixture(t)

	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 42)
	requireVoteError(t, err, 400, "La elección no está registrada localmente.")
}

func TestSubmitInactiveElection(t *testing.T) {
	_, chain, svc := votingFixture(t)

	chain.status[5].Ended = true
	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5)
	requireVoteError(t, err, 400, "La elección no está activa actualmente.")

	chain.status[5].Ended = false
	chain.status[5].Started = false
	err = svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5)
	requireVoteError(t, err, 400, "La elección no está activa actualmente.")
	assert.Empty(t, chain.votes)
}

func TestSubmitCandidateOutsideElection(t *testing.T) {
	_, _, svc := votingFixture(t)

	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 9, 5)
	requireVoteError(t, err, 400, "El candidato no pertenece a esta elección.")
}

func TestSubmitPositionBeyondContractArray(t *testing.T) {
	_, chain, svc := votingFixture(t)

	// The mirror knows two candidates but the contract only one: the
	// second position does not exist on-chain.
	chain.status[5].CandidateCount = 1
	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 2, 5)
	requireVoteError(t, err, 400, "Candidato no encontrado en la cadena.")
}

func TestSubmitDoubleVoteRejected(t *testing.T) {
	_, chain, svc := votingFixture(t)

	chain.voted[votedKey(5, voterWallet)] = true
	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5)
	requireVoteError(t, err, 400, "Esta wallet ya ha votado en la cadena.")
	assert.Empty(t, chain.votes)
}

func TestSubmitLedgerErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		voteErr error
		title   string
	}{
		{"rejected", ledger.ErrRejected, "El contrato rechazó el voto."},
		{"ambiguous", ledger.ErrAmbiguous, "No se pudo confirmar el voto en la cadena. Verifique antes de reintentar."},
		{"transport", errors.New("rpc down"), "Error al emitir el voto en la cadena."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, chain, svc := votingFixture(t)
			chain.voteErr = tc.voteErr

			err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5)
			requireVoteError(t, err, 500, tc.title)
			assert.Zero(t, store.receipts, "no receipt without a confirmed vote")
		})
	}
}

func TestSubmitReceiptFailureSurfacesInconsistency(t *testing.T) {
	store, chain, svc := votingFixture(t)
	store.receiptErr = errors.New("disk full")

	err := svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5)
	requireVoteError(t, err, 500, "El voto fue emitido pero no se pudo guardar el recibo local.")
	assert.Len(t, chain.votes, 1, "the vote itself landed on-chain")
}

func TestSubmitPreconfirmedSkipsChainWrite(t *testing.T) {
	store := newFakeElectionStore()
	require.NoError(t, store.CreateElection(&models.Election{Title: "Junta", OnChainID: 5, Started: true}, []uint{1}))
	chain := &fakeLedger{
		status: map[uint64]*ledger.ElectionStatus{5: {Started: true, CandidateCount: 1}},
		voted:  make(map[string]bool),
	}
	svc := NewVoteService(store, NewIndexMapper(store), chain, nil, zap.NewNop(), SubmitModePreconfirmed)

	require.NoError(t, svc.Submit(context.Background(), models.RoleVoter, voterWallet, 1, 5))
	assert.Empty(t, chain.votes, "preconfirmed mode records the receipt only")
	assert.Equal(t, 1, store.receipts)
}

func TestSubmitModeDefaultsToBackend(t *testing.T) {
	svc := NewVoteService(newFakeElectionStore(), nil, &fakeLedger{}, nil, zap.NewNop(), "whatever")
	assert.Equal(t, SubmitModeBackend, svc.submitMode)
}

func TestHasVoted(t *testing.T) {
	_, chain, svc := votingFixture(t)
	chain.voted[votedKey(5, voterWallet)] = true

	voted, err := svc.HasVoted(context.Background(), 5, voterWallet)
	require.NoError(t, err)
	assert.True(t, voted)

	_, err = svc.HasVoted(context.Background(), 42, voterWallet)
	requireVoteError(t, err, 404, "La elección no está registrada localmente.")

	_, err = svc.HasVoted(context.Background(), 5, "")
	requireVoteError(t, err, 400, "Parámetros inválidos.")
}
