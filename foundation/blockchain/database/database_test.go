package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func noopEv(v string, args ...any) {}

// mineChain builds a chain of the specified length by mining each block on
// top of the previous one.
func mineChain(t *testing.T, length int) []database.Block {
	t.Helper()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	db := database.New(database.Genesis(now))

	for i := 1; i < length; i++ {
		prevBlock, err := db.LatestBlock()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to get the latest block: %v", failed, err)
		}

		trans := []database.Tx{
			{Sender: "alice", Recipient: "bob", Amount: float64(i)},
			{Sender: "0", Recipient: "miner", Amount: 1},
		}
		candidate := database.NewBlock(prevBlock.Index+1, now.Add(time.Duration(i)*time.Second), trans, 0, prevBlock.Hash())

		nonce, err := database.Mine(context.Background(), candidate, noopEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine block %d: %v", failed, candidate.Index, err)
		}
		candidate.Nonce = nonce

		if err := db.Write(candidate); err != nil {
			t.Fatalf("\t%s\tShould be able to write block %d: %v", failed, candidate.Index, err)
		}
	}

	return db.Copy()
}

// =============================================================================

func TestValidateProof(t *testing.T) {
	block := database.NewBlock(2, time.Now(), []database.Tx{{Sender: "a", Recipient: "b", Amount: 5}}, 0, "abc")

	t.Log("Given the need to validate a proof of work.")
	{
		t.Logf("\tTest 0:\tWhen checking a range of nonces.")
		{
			for nonce := uint64(0); nonce < 2_000; nonce++ {
				cpy := block
				cpy.Nonce = nonce
				exp := strings.HasPrefix(cpy.Hash(), "0000")

				if got := database.ValidateProof(nonce, block); got != exp {
					t.Fatalf("\t%s\tTest 0:\tShould agree with the hash prefix for nonce %d: got %v, exp %v", failed, nonce, got, exp)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould agree with the hash prefix for every nonce.", success)

			if block.Nonce != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould not change the caller's block, got nonce %d.", failed, block.Nonce)
			}
			t.Logf("\t%s\tTest 0:\tShould not change the caller's block.", success)
		}

		t.Logf("\tTest 1:\tWhen checking malformed hashes.")
		{
			for _, hash := range []string{"", "0000", strings.Repeat("0", 63), strings.Repeat("0", 65)} {
				if database.IsHashSolved(hash) {
					t.Fatalf("\t%s\tTest 1:\tShould reject hash %q.", failed, hash)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould reject hashes of the wrong size.", success)
		}
	}
}

func TestMine(t *testing.T) {
	t.Log("Given the need to mine a block.")
	{
		t.Logf("\tTest 0:\tWhen mining a candidate block.")
		{
			candidate := database.NewBlock(2, time.Now(), []database.Tx{{Sender: "0", Recipient: "node", Amount: 1}}, 99, "prev")

			nonce, err := database.Mine(context.Background(), candidate, noopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine the block.", success)

			if !database.ValidateProof(nonce, candidate) {
				t.Fatalf("\t%s\tTest 0:\tShould get a nonce that solves the puzzle.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get a nonce that solves the puzzle.", success)

			for n := uint64(0); n < nonce; n++ {
				if database.ValidateProof(n, candidate) {
					t.Fatalf("\t%s\tTest 0:\tShould get the smallest nonce, %d also solves the puzzle.", failed, n)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould get the smallest nonce.", success)

			if candidate.Nonce != 99 {
				t.Fatalf("\t%s\tTest 0:\tShould not change the caller's candidate.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not change the caller's candidate.", success)
		}

		t.Logf("\tTest 1:\tWhen the mining is cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			candidate := database.NewBlock(2, time.Now(), nil, 0, "prev")
			if _, err := database.Mine(ctx, candidate, noopEv); !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tTest 1:\tShould get a cancelled error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get a cancelled error.", success)
		}
	}
}

func TestValidateChain(t *testing.T) {
	chain := mineChain(t, 4)

	type table struct {
		name   string
		tamper func(chain []database.Block) []database.Block
		valid  bool
	}

	tt := []table{
		{
			name:   "mined",
			tamper: func(chain []database.Block) []database.Block { return chain },
			valid:  true,
		},
		{
			name:   "genesis",
			tamper: func(chain []database.Block) []database.Block { return chain[:1] },
			valid:  true,
		},
		{
			name:   "empty",
			tamper: func(chain []database.Block) []database.Block { return nil },
			valid:  false,
		},
		{
			name: "amount",
			tamper: func(chain []database.Block) []database.Block {
				chain[1].Transactions[0].Amount = 1_000
				return chain
			},
			valid: false,
		},
		{
			name: "genesis-timestamp",
			tamper: func(chain []database.Block) []database.Block {
				chain[0].TimeStamp = "1970-01-01 00:00:00.000000"
				return chain
			},
			valid: false,
		},
		{
			name: "nonce",
			tamper: func(chain []database.Block) []database.Block {
				chain[3].Nonce++
				for database.ValidateProof(chain[3].Nonce, chain[3]) {
					chain[3].Nonce++
				}
				return chain
			},
			valid: false,
		},
		{
			name: "prevhash",
			tamper: func(chain []database.Block) []database.Block {
				chain[2].PrevHash = "0"
				return chain
			},
			valid: false,
		},
	}

	t.Log("Given the need to validate a chain.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s chain.", testID, tst.name)
			{
				f := func(t *testing.T) {
					cpy := make([]database.Block, len(chain))
					for i, block := range chain {
						cpy[i] = block.Clone()
					}

					err := database.ValidateChain(tst.tamper(cpy))

					switch tst.valid {
					case true:
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould find the chain valid: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould find the chain valid.", success, testID)

					default:
						if !errors.Is(err, database.ErrInvalidChain) {
							t.Fatalf("\t%s\tTest %d:\tShould find the chain invalid, got %v.", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould find the chain invalid.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestDatabase(t *testing.T) {
	t.Log("Given the need to maintain a chain of blocks.")
	{
		t.Logf("\tTest 0:\tWhen the chain is empty.")
		{
			var db database.Database
			if _, err := db.LatestBlock(); !errors.Is(err, database.ErrEmptyChain) {
				t.Fatalf("\t%s\tTest 0:\tShould get an empty chain error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get an empty chain error.", success)

			if err := db.Replace(nil); !errors.Is(err, database.ErrEmptyChain) {
				t.Fatalf("\t%s\tTest 0:\tShould not replace with an empty chain, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould not replace with an empty chain.", success)
		}

		t.Logf("\tTest 1:\tWhen starting from genesis.")
		{
			db := database.New(database.Genesis(time.Now()))

			genesis, err := db.LatestBlock()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to get the genesis block: %v", failed, err)
			}
			if genesis.Index != 1 || genesis.Nonce != 0 || genesis.PrevHash != database.GenesisPrevHash || len(genesis.Transactions) != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould get a proper genesis block: %+v", failed, genesis)
			}
			t.Logf("\t%s\tTest 1:\tShould get a proper genesis block.", success)

			if err := db.Write(database.NewBlock(3, time.Now(), nil, 0, genesis.Hash())); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not write a block out of order.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not write a block out of order.", success)

			if err := db.Write(database.NewBlock(2, time.Now(), nil, 0, genesis.Hash())); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould write the next block: %v", failed, err)
			}
			if db.Length() != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould have 2 blocks, got %d.", failed, db.Length())
			}
			t.Logf("\t%s\tTest 1:\tShould write the next block.", success)

			blocks := db.Copy()
			blocks[0].PrevHash = "changed"
			if latest, _ := db.LatestBlock(); latest.Index != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould get block 2 as the latest block.", failed)
			}
			if db.Copy()[0].PrevHash != database.GenesisPrevHash {
				t.Fatalf("\t%s\tTest 1:\tShould not share memory with a copy.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not share memory with a copy.", success)
		}
	}
}
