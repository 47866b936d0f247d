// Command lounge is a terminal front end for a single local profile:
// open boxes, claim or discard the reveal, sell duplicates, inspect the
// collection. State persists to DATA_DIR between runs.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/lovejzzz/GrooveLounge/internal/economy"
	"github.com/lovejzzz/GrooveLounge/internal/game"
	"github.com/lovejzzz/GrooveLounge/internal/persist"
	"github.com/lovejzzz/GrooveLounge/internal/session"
)

var rarityColors = map[game.Rarity]*color.Color{
	game.Classic:   color.New(color.FgWhite),
	game.Silver:    color.New(color.FgHiWhite),
	game.Gold:      color.New(color.FgYellow),
	game.Rare:      color.New(color.FgBlue),
	game.Supreme:   color.New(color.FgCyan),
	game.Epic:      color.New(color.FgMagenta),
	game.Legendary: color.New(color.FgHiYellow),
	game.Mythic:    color.New(color.FgHiMagenta),
	game.Secret:    color.New(color.FgHiCyan, color.Bold),
}

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := persist.NewFileStore(dataDir, "local")
	if err != nil {
		color.Red("cannot open save file: %v", err)
		os.Exit(1)
	}

	sess, err := session.New(session.Params{
		Store: store,
		Listener: func(e session.Event) {
			if e.Kind == session.SetCompleted {
				color.HiGreen("*** Set %s complete! +%d coins ***", e.SetID, e.Reward)
			}
		},
	})
	if err != nil {
		color.Red("cannot load save: %v", err)
		os.Exit(1)
	}

	catalog := game.DefaultCatalog()
	color.Cyan("Welcome to the Groove Lounge.")
	printBalance(sess)
	fmt.Println(`Commands: boxes | open <box> | claim | discard | sell <category> <type> <rarity> | collection | balance | dev on|off | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return

		case "boxes":
			for _, b := range catalog.Boxes {
				color.Yellow("%-10s %4d coins  (%s)", b.ID, b.Cost, b.Name)
			}

		case "open":
			if len(fields) != 2 {
				color.Red("usage: open <box>")
				continue
			}
			card, err := sess.OpenBox(fields[1])
			if err != nil {
				printErr(err)
				continue
			}
			printCard("You got", card)
			printBalance(sess)

		case "claim":
			out := sess.Claim()
			if !out.Claimed {
				fmt.Println("nothing to claim")
				continue
			}
			printCard("Claimed", *out.Card)

		case "discard":
			sess.Discard()
			fmt.Println("card discarded")

		case "sell":
			if len(fields) != 4 {
				color.Red("usage: sell <category> <type> <rarity>")
				continue
			}
			out, err := sess.Sell(game.Category(fields[1]), fields[2], game.Rarity(fields[3]))
			if err != nil {
				printErr(err)
				continue
			}
			color.Green("sold for %d coins", out.Credited)
			if out.SetUncompleted {
				color.Yellow("the %s set is no longer complete", game.SetID(game.Category(fields[1]), fields[2]))
			}
			printBalance(sess)

		case "collection":
			for _, cat := range game.Categories {
				color.Cyan("%s:", cat)
				for typ, ids := range sess.CollectionSnapshot()[cat] {
					fmt.Printf("  %-10s %v\n", typ, ids)
				}
			}
			fmt.Printf("total cards: %d, completed sets: %v\n", sess.TotalCards(), sess.CompletedSets())

		case "dev":
			if len(fields) == 2 && fields[1] == "on" {
				sess.SetDeveloperMode(true)
				color.Magenta("developer mode on")
			} else {
				sess.SetDeveloperMode(false)
				fmt.Println("developer mode off")
			}

		default:
			color.Red("unknown command %q", fields[0])
		}
	}
}

func printCard(prefix string, card game.Card) {
	c, ok := rarityColors[card.Rarity]
	if !ok {
		c = color.New(color.FgWhite)
	}
	value := fmt.Sprintf("%d coins", card.Value)
	if card.Rarity == game.Secret {
		value = "??? coins"
	}
	c.Printf("%s %s (%s %s) worth %s\n", prefix, card.Type, card.Rarity, card.Category, value)
}

func printBalance(sess *session.Session) {
	color.Yellow("balance: %d coins", sess.Balance())
}

func printErr(err error) {
	switch err {
	case economy.ErrInsufficientFunds:
		color.Red("not enough coins!")
	case game.ErrUnknownBox:
		color.Red("no such box")
	case session.ErrCannotSellLastCopy:
		color.Red("you can't sell your last one")
	default:
		color.Red("%v", err)
	}
}
