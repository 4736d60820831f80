package ledger

// ABI of the election contract, limited to the operations the backend
// uses. The contract itself (vote storage, tallying, winner selection)
// is deployed and maintained outside this repository.
const electionABI = `[
  {
    "type": "function",
    "name": "startNewElection",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "title", "type": "string"},
      {"name": "candidateNames", "type": "string[]"}
    ],
    "outputs": []
  },
  {
    "type": "event",
    "name": "ElectionStarted",
    "anonymous": false,
    "inputs": [
      {"name": "electionId", "type": "uint256", "indexed": false},
      {"name": "title", "type": "string", "indexed": false}
    ]
  },
  {
    "type": "function",
    "name": "endElection",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "electionId", "type": "uint256"}],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getElectionStatus",
    "stateMutability": "view",
    "inputs": [{"name": "electionId", "type": "uint256"}],
    "outputs": [
      {"name": "title", "type": "string"},
      {"name": "started", "type": "bool"},
      {"name": "ended", "type": "bool"},
      {"name": "candidatesCount", "type": "uint256"}
    ]
  },
  {
    "type": "function",
    "name": "getResults",
    "stateMutability": "view",
    "inputs": [{"name": "electionId", "type": "uint256"}],
    "outputs": [
      {"name": "names", "type": "string[]"},
      {"name": "votes", "type": "uint256[]"}
    ]
  },
  {
    "type": "function",
    "name": "hasAddressVoted",
    "stateMutability": "view",
    "inputs": [
      {"name": "electionId", "type": "uint256"},
      {"name": "voter", "type": "address"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "type": "function",
    "name": "getWinner",
    "stateMutability": "view",
    "inputs": [{"name": "electionId", "type": "uint256"}],
    "outputs": [
      {"name": "winnerName", "type": "string"},
      {"name": "winnerVotes", "type": "uint256"},
      {"name": "isTie", "type": "bool"}
    ]
  },
  {
    "type": "function",
    "name": "voteFor",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "electionId", "type": "uint256"},
      {"name": "candidateIndex", "type": "uint256"},
      {"name": "voter", "type": "address"}
    ],
    "outputs": []
  }
]`
