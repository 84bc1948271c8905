// Package game implements the rules of a memory-matching board.
//
// A Board holds a fixed grid of tiles. Each tile hides one symbol and every
// symbol appears on exactly two tiles. Activating a hidden tile reveals it and
// asks the board to evaluate the revealed tiles:
//
//   - one revealed tile: any previously mismatched pair is hidden again
//   - two revealed tiles: equal symbols are locked as matched, otherwise both
//     are flagged as mismatched until the next activation
//   - more than two: ErrInvariantViolation
//
// # Basic Usage
//
// Game is the composition root. It takes the rendering and notification
// collaborators explicitly so independent games can live side by side:
//
//	g, err := game.New(game.Config{
//	    Renderer: surface.New(),
//	    Notifier: notify.NewLogger(logger),
//	    Logger:   logger,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := g.Start(); err != nil {
//	    return err
//	}
//	err = g.Activate(0)
//
// # Deterministic Testing
//
// Pass a seeded source to get a reproducible deal:
//
//	g, _ := game.New(game.Config{Renderer: r, Rand: randutil.New(42)})
//
// or a scripted one with randutil.Sequence for full control.
package game
