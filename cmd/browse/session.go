package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/infra/foodgramapi"
	"foodgram-client/internal/usecase/recipes"
)

// ShortLinker resolves a recipe short link.
type ShortLinker interface {
	GetShortLink(ctx context.Context, id int64) (string, error)
}

// errQuit ends the command loop.
var errQuit = errors.New("quit")

const helpText = `commands:
  n           next page
  p           previous page
  g N         go to page N
  like ID     toggle favorite
  cart ID     toggle shopping cart
  link ID     print short link
  r           reload current page
  h           help
  q           quit
`

// session is one interactive pager over the recipe list.
type session struct {
	ctrl  *recipes.Controller
	store *recipes.Store
	links ShortLinker
	out   io.Writer

	mu     sync.Mutex // serializes output and command handling
	orders int
}

func newSession(ctrl *recipes.Controller, store *recipes.Store, links ShortLinker, out io.Writer) *session {
	return &session{ctrl: ctrl, store: store, links: links, out: out}
}

// run reads commands from in until EOF, "q" or ctx is done.
func (s *session) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.ctrl.Wait()
	s.render()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := s.execute(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				s.printf("error: %v\n", err)
			}
		}
	}
}

// execute runs one command line.
func (s *session) execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "q", "quit":
		return errQuit
	case "h", "help":
		s.printf("%s", helpText)
		return nil
	case "n", "next":
		return s.goTo(s.store.Page() + 1)
	case "p", "prev":
		return s.goTo(s.store.Page() - 1)
	case "g", "go":
		page, err := intArg(args)
		if err != nil {
			return err
		}
		return s.goTo(int(page))
	case "r", "reload":
		s.ctrl.Refresh()
		s.ctrl.Wait()
		s.render()
		return nil
	case "like":
		return s.cardAction(ctx, args, func(ctx context.Context, c recipes.Card) error {
			return c.HandleLike(ctx)
		})
	case "cart":
		return s.cardAction(ctx, args, func(ctx context.Context, c recipes.Card) error {
			return c.HandleAddToCart(ctx)
		})
	case "link":
		id, err := intArg(args)
		if err != nil {
			return err
		}
		link, err := s.links.GetShortLink(ctx, id)
		if err != nil {
			return gone(id, err)
		}
		s.printf("%s\n", link)
		return nil
	default:
		return fmt.Errorf("unknown command %q, type h for help", cmd)
	}
}

// goTo selects page, clamped to the known page range, and shows the result.
func (s *session) goTo(page int) error {
	total := pagination.CalculateTotalPages(s.store.Count(), pagination.RecipeListLimit)
	s.ctrl.OnPageChangeRequested(pagination.ClampPage(page, total))
	s.ctrl.Wait()
	s.render()
	return nil
}

func (s *session) cardAction(ctx context.Context, args []string, action func(context.Context, recipes.Card) error) error {
	id, err := intArg(args)
	if err != nil {
		return err
	}
	for _, card := range recipes.BuildView(s.store, s.updateOrders).Cards {
		if card.Key == id {
			if err := action(ctx, card); err != nil {
				return gone(id, err)
			}
			s.render()
			return nil
		}
	}
	return fmt.Errorf("recipe %d: %w", id, recipes.ErrRecipeNotInList)
}

// gone explains a 404 for a recipe that is still listed locally.
func gone(id int64, err error) error {
	if foodgramapi.IsNotFound(err) {
		return fmt.Errorf("recipe %d was deleted, press r to reload: %w", id, err)
	}
	return err
}

func (s *session) updateOrders(delta int) {
	s.mu.Lock()
	s.orders += delta
	s.mu.Unlock()
}

// render prints the current list page.
func (s *session) render() {
	view := recipes.BuildView(s.store, s.updateOrders)

	s.mu.Lock()
	defer s.mu.Unlock()

	p := view.Pagination
	md := pagination.NewMetadata(pagination.Params{Page: p.Page, Limit: p.Limit}, p.Count)
	fmt.Fprintf(s.out, "\n%s: page %d/%d, %d recipes, cart %d%s%s\n", view.Title, p.Page, md.TotalPages, p.Count, s.orders,
		marker(md.HasPrevious(), " [p]rev"), marker(md.HasNext(), " [n]ext"))
	if view.Cards == nil {
		fmt.Fprintln(s.out, "  (nothing here)")
		return
	}
	for _, card := range view.Cards {
		r := card.Recipe
		fmt.Fprintf(s.out, "  [%d] %s, %d min, by %s%s%s\n",
			card.Key, r.Name, r.CookingTime, r.Author.Username,
			marker(r.IsFavorited, " [fav]"), marker(r.IsInShoppingCart, " [cart]"))
	}
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func marker(on bool, label string) string {
	if on {
		return label
	}
	return ""
}

func intArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one numeric argument")
	}
	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return v, nil
}
