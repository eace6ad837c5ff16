package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	auction "nft-auction/internal/auctionService"
	"nft-auction/internal/repository"
	"nft-auction/internal/rules"
	wallet "nft-auction/internal/walletService"
	"nft-auction/utils"

	"github.com/shopspring/decimal"
)

const usage = `usage: auctionctl [--data DIR] [--log-level LEVEL] <command> [args]

commands:
  connect <address>        connect the wallet
  disconnect               disconnect the wallet
  balance                  show address, balance and connection state
  history                  show the wallet transaction log
  create <title> <price>   list a new auction (costs the creation fee)
  bid <auction-id> <amount>
  end <auction-id>
  settle <auction-id>
  list                     all auctions, newest first
  show <auction-id>
  mine                     auctions created by the connected wallet
  mybids                   auctions the connected wallet bid on
  clear                    drop every auction`

var errUsage = errors.New("invalid usage")

type app struct {
	wallet   *wallet.WalletService
	auctions *auction.AuctionService
	out      io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("auctionctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dataDir := fs.String("data", ".auction-data", "directory holding wallet and auction state")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v\n%s", errUsage, err, usage)
	}
	utils.SetLevel(*logLevel)

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command\n%s", errUsage, usage)
	}

	store, err := repository.NewFileStore(*dataDir)
	if err != nil {
		return err
	}
	w, err := wallet.NewWalletService(ctx, store, rules.SingleUserGrant)
	if err != nil {
		return err
	}
	a, err := auction.NewAuctionService(ctx, w, store, nil)
	if err != nil {
		return err
	}

	return (&app{wallet: w, auctions: a, out: out}).dispatch(ctx, rest[0], rest[1:])
}

func (c *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "connect":
		if err := want(args, 1); err != nil {
			return err
		}
		addr, err := c.wallet.Connect(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(map[string]any{"address": addr, "balance": c.wallet.Balance()})
	case "disconnect":
		if err := c.wallet.Disconnect(ctx); err != nil {
			return err
		}
		return c.print(map[string]any{"connected": false})
	case "balance":
		return c.print(c.wallet.State())
	case "history":
		history, err := c.wallet.TransactionHistory(ctx)
		if err != nil {
			return err
		}
		return c.print(history)
	case "create":
		if err := want(args, 2); err != nil {
			return err
		}
		price, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		created, err := c.auctions.CreateAuction(ctx, args[0], price)
		if err != nil {
			return err
		}
		return c.print(created)
	case "bid":
		if err := want(args, 2); err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		updated, err := c.auctions.PlaceBid(ctx, args[0], amount)
		if err != nil {
			return err
		}
		return c.print(updated)
	case "end":
		if err := want(args, 1); err != nil {
			return err
		}
		updated, err := c.auctions.EndAuction(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(updated)
	case "settle":
		if err := want(args, 1); err != nil {
			return err
		}
		updated, err := c.auctions.SettleAuction(ctx, args[0])
		if err != nil {
			return err
		}
		return c.print(updated)
	case "list":
		return c.print(c.auctions.Auctions())
	case "show":
		if err := want(args, 1); err != nil {
			return err
		}
		found, err := c.auctions.Auction(args[0])
		if err != nil {
			return err
		}
		return c.print(found)
	case "mine":
		return c.print(c.auctions.MyAuctions())
	case "mybids":
		return c.print(c.auctions.MyBids())
	case "clear":
		if err := c.auctions.ClearAll(ctx); err != nil {
			return err
		}
		return c.print(map[string]any{"cleared": true})
	default:
		return fmt.Errorf("%w: unknown command %q\n%s", errUsage, cmd, usage)
	}
}

func (c *app) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func want(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", errUsage, n, len(args))
	}
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", errUsage, s)
	}
	return amount, nil
}
