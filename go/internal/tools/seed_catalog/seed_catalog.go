// seed_catalog loads a player catalog JSON file into the draft_players
// table so operations can query the pool alongside session state. The file
// is validated through the catalog loader first, so a file that seeds is a
// file the engine will accept.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftday/warroom/go/internal/catalog"
	"github.com/draftday/warroom/go/internal/dbconfig"
)

func main() {
	ctx := context.Background()

	path := "players.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}

	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	players := cat.Players()
	total, inserted, skipped, errs := len(players), 0, 0, 0
	for _, p := range players {
		tag, err := pool.Exec(ctx, `
            INSERT INTO draft_players (
              id, full_name, position, nfl_team, adp
            ) VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (id) DO UPDATE SET
              full_name = EXCLUDED.full_name,
              position  = EXCLUDED.position,
              nfl_team  = EXCLUDED.nfl_team,
              adp       = EXCLUDED.adp
        `, p.ID, p.FullName, string(p.Position), p.NFLTeam, p.ADP)
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}

	fmt.Printf(
		"Catalog seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
	if errs > 0 {
		os.Exit(1)
	}
}
