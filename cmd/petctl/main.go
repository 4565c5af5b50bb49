package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"pet-registry/internal/client"
	"pet-registry/internal/domain/pets"

	"github.com/fatih/color"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	apiURL := os.Getenv("PETS_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	c, err := client.New(apiURL, 10*time.Second)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, c, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "create", "add":
		return cmdCreate(ctx, c, rest, out)
	case "list", "ls":
		return cmdList(ctx, c, out)
	case "get":
		return cmdGet(ctx, c, rest, out)
	case "update", "edit":
		return cmdUpdate(ctx, c, rest, out)
	case "delete", "rm":
		return cmdDelete(ctx, c, rest, out)
	case "types":
		return cmdTypes(ctx, c, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// petFlags lee --name/-n, --type/-t, --age/-a. Solo marca presentes los que vinieron.
func petFlags(args []string) (pets.Optional[string], pets.Optional[string], pets.Optional[int], []string, error) {
	var (
		name, typ  pets.Optional[string]
		age        pets.Optional[int]
		positional []string
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n", "--type", "-t", "--age", "-a":
			if i+1 >= len(args) {
				return name, typ, age, nil, fmt.Errorf("%w: %s needs a value", errUsage, args[i])
			}
			v := args[i+1]
			switch args[i] {
			case "--name", "-n":
				name = pets.Some(v)
			case "--type", "-t":
				typ = pets.Some(v)
			default:
				n, err := strconv.Atoi(v)
				if err != nil {
					return name, typ, age, nil, fmt.Errorf("%w: age must be an integer, got %q", errUsage, v)
				}
				age = pets.Some(n)
			}
			i++
		default:
			positional = append(positional, args[i])
		}
	}
	return name, typ, age, positional, nil
}

func cmdCreate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	name, typ, age, _, err := petFlags(args)
	if err != nil {
		return err
	}
	if !name.IsSet() || !typ.IsSet() || !age.IsSet() {
		return fmt.Errorf("%w: create --name <name> --type <type> --age <age>", errUsage)
	}

	p, err := c.Create(ctx, pets.CreateInput{
		Name: name.ValueOr(""),
		Type: typ.ValueOr(""),
		Age:  age.ValueOr(0),
	})
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "✓ Created pet: %d\n", p.ID)
	printPets(out, []pets.Pet{p})
	return nil
}

func cmdList(ctx context.Context, c *client.Client, out io.Writer) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		color.New(color.FgHiBlack).Fprintln(out, "No pets registered yet.")
		return nil
	}
	printPets(out, items)
	return nil
}

func cmdGet(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}

	p, found, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("pet %d not found", id)
	}
	printPets(out, []pets.Pet{p})
	return nil
}

func cmdUpdate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	name, typ, age, positional, err := petFlags(args)
	if err != nil {
		return err
	}
	id, err := idArg(positional)
	if err != nil {
		return err
	}

	p, found, err := c.Update(ctx, pets.UpdateInput{ID: id, Name: name, Type: typ, Age: age})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("pet %d not found", id)
	}

	color.New(color.FgGreen).Fprintf(out, "✓ Updated pet: %d\n", p.ID)
	printPets(out, []pets.Pet{p})
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}

	deleted, err := c.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		color.New(color.FgYellow).Fprintf(out, "Pet %d did not exist\n", id)
		return nil
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Deleted pet: %d\n", id)
	return nil
}

func cmdTypes(ctx context.Context, c *client.Client, out io.Writer) error {
	types, err := c.Types(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  VALUE\tLABEL")
	for _, t := range types {
		fmt.Fprintf(w, "  %s\t%s\n", t.Value, t.Label)
	}
	return w.Flush()
}

func idArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one pet id", errUsage)
	}
	return pets.ParseID(args[0])
}

func printPets(out io.Writer, items []pets.Pet) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tTYPE\tAGE\tCREATED")
	for _, p := range items {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Type, p.Age, p.CreatedAt.Local().Format("Jan 02 15:04"))
	}
	_ = w.Flush()
}

func printUsage(out io.Writer) {
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(out, "Usage: petctl <command> [args]")
	fmt.Fprintln(out)
	yellow.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  create --name N --type T --age A   Register a pet")
	fmt.Fprintln(out, "  list                               List pets, newest first")
	fmt.Fprintln(out, "  get <id>                           Show one pet")
	fmt.Fprintln(out, "  update <id> [--name N] [--type T] [--age A]")
	fmt.Fprintln(out, "                                     Change only the given fields")
	fmt.Fprintln(out, "  delete <id>                        Remove a pet")
	fmt.Fprintln(out, "  types                              Suggested pet types")
	fmt.Fprintln(out)
	yellow.Fprintln(out, "Environment:")
	fmt.Fprintln(out, "  PETS_API_URL   API base url (default: "+defaultAPIURL+")")
}
