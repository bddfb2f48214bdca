// Package terminal to tekstowa wersja okienka biblioteki: menu, formularze i komunikaty.
// Każda akcja przechodzi przez library.Desk, więc zasady są te same co w API HTTP.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"library-desk/internal/library"
	"library-desk/internal/models"
)

// PasswordReader czyta hasło bez wyświetlania go na ekranie
type PasswordReader func(prompt string) (string, error)

// Console prowadzi jedną sesję przy okienku
type Console struct {
	desk         *library.Desk
	in           *bufio.Scanner
	out          io.Writer
	readPassword PasswordReader
	log          logrus.FieldLogger

	session *models.Session
}

// Option konfiguruje Console
type Option func(*Console)

// WithPasswordReader podmienia sposób czytania haseł (np. term.ReadPassword)
func WithPasswordReader(r PasswordReader) Option {
	return func(c *Console) { c.readPassword = r }
}

// NewConsole tworzy konsolę czytającą z in i piszącą do out
func NewConsole(desk *library.Desk, in io.Reader, out io.Writer, log logrus.FieldLogger, opts ...Option) *Console {
	c := &Console{
		desk: desk,
		in:   bufio.NewScanner(in),
		out:  out,
		log:  log,
	}
	c.readPassword = c.promptLine
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session zwraca aktualnie zalogowaną tożsamość (nil po wylogowaniu)
func (c *Console) Session() *models.Session {
	return c.session
}

// Run uruchamia konsolę: najpierw konfigurację administratorów jeśli trzeba, potem menu główne.
// Kończy się po wybraniu "wyjście", na końcu wejścia albo po anulowaniu ctx.
func (c *Console) Run(ctx context.Context) error {
	needed, err := c.desk.Accounts.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("sprawdzenie konfiguracji: %w", err)
	}
	if needed {
		if err := c.Setup(ctx); err != nil {
			return err
		}
	}

	for ctx.Err() == nil {
		c.println()
		c.println("=== Biblioteka ===")
		c.println("1. Zarejestruj się")
		c.println("2. Zaloguj się")
		c.println("3. Wyjście")

		choice, ok := c.prompt("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1", "register":
			c.register(ctx)
		case "2", "login":
			if !c.login(ctx) {
				continue
			}
			if c.session.IsAdmin() {
				c.adminPanel(ctx)
			} else {
				c.libraryPanel(ctx)
			}
			c.session = nil
		case "3", "exit":
			c.println("Do widzenia!")
			return nil
		default:
			c.println("Nieznana opcja")
		}
	}
	return ctx.Err()
}

// Setup zbiera listę administratorów i zapisuje ją jednym poleceniem
func (c *Console) Setup(ctx context.Context) error {
	needed, err := c.desk.Accounts.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("sprawdzenie konfiguracji: %w", err)
	}
	if !needed {
		c.println("Administratorzy są już skonfigurowani")
		return nil
	}

	c.println("=== Konfiguracja początkowa ===")
	c.println("Dodaj co najmniej jednego administratora. Pusta nazwa kończy listę.")

	var admins []models.Credentials
	for {
		username, ok := c.prompt("Nazwa administratora: ")
		if !ok {
			return io.ErrUnexpectedEOF
		}
		if username == "" {
			if len(admins) == 0 {
				c.println("Wymagany jest co najmniej jeden administrator")
				continue
			}

			res := c.desk.Execute(ctx, nil, library.Request{Command: library.CmdBootstrap, Admins: admins})
			if res.OK() {
				c.printf("Zapisano administratorów: %d\n", len(admins))
				return nil
			}
			c.printError(res.Err)
			if res.Err.Kind == library.KindStoreUnavailable {
				return res.Err
			}
			// lista odrzucona w całości, zaczynamy od nowa
			admins = nil
			continue
		}

		password, err := c.readPassword("Hasło: ")
		if err != nil {
			return err
		}
		if !library.IsStrongPassword(password) {
			c.println("Hasło musi mieć co najmniej 8 znaków, literę i cyfrę")
			continue
		}
		if containsUsername(admins, username) {
			c.println("Ta nazwa jest już na liście")
			continue
		}

		admins = append(admins, models.Credentials{Username: username, Password: password})
		c.printf("Dodano %s\n", username)
	}
}

func (c *Console) register(ctx context.Context) {
	username, ok := c.prompt("Nazwa użytkownika: ")
	if !ok {
		return
	}
	password, err := c.readPassword("Hasło: ")
	if err != nil {
		return
	}

	res := c.desk.Execute(ctx, nil, library.Request{
		Command:  library.CmdRegister,
		Username: username,
		Password: password,
	})
	if !res.OK() {
		c.printError(res.Err)
		return
	}
	c.println("Konto utworzone, możesz się zalogować")
}

func (c *Console) login(ctx context.Context) bool {
	username, ok := c.prompt("Nazwa użytkownika: ")
	if !ok {
		return false
	}
	password, err := c.readPassword("Hasło: ")
	if err != nil {
		return false
	}

	res := c.desk.Execute(ctx, nil, library.Request{
		Command:  library.CmdLogin,
		Username: username,
		Password: password,
	})
	if !res.OK() {
		c.printError(res.Err)
		return false
	}

	identity := res.Value.(models.Identity)
	c.session = &models.Session{Username: identity.Username, Role: identity.Role}
	c.log.WithFields(logrus.Fields{"username": identity.Username, "role": identity.Role}).Debug("zalogowano w konsoli")
	c.printf("Witaj, %s!\n", identity.Username)
	return true
}

func (c *Console) adminPanel(ctx context.Context) {
	for ctx.Err() == nil {
		c.println()
		c.println("=== Panel administratora ===")
		c.println("1. Dodaj książkę")
		c.println("2. Usuń książkę")
		c.println("3. Zaległe wypożyczenia")
		c.println("4. Wyloguj")

		choice, ok := c.prompt("> ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			c.addBook(ctx)
		case "2":
			c.removeBook(ctx)
		case "3":
			c.listOverdue(ctx)
		case "4", "logout":
			return
		default:
			c.println("Nieznana opcja")
		}
	}
}

func (c *Console) libraryPanel(ctx context.Context) {
	for ctx.Err() == nil {
		c.println()
		c.println("=== Biblioteka ===")
		c.println("1. Szukaj książki")
		c.println("2. Wypożycz książkę")
		c.println("3. Moje książki")
		c.println("4. Zwróć książkę")
		c.println("5. Wyloguj")

		choice, ok := c.prompt("> ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			name, ok := c.prompt("Nazwa książki: ")
			if ok {
				c.Search(ctx, name)
			}
		case "2":
			c.borrow(ctx)
		case "3":
			c.listMine(ctx)
		case "4":
			c.returnBook(ctx)
		case "5", "logout":
			return
		default:
			c.println("Nieznana opcja")
		}
	}
}

func (c *Console) addBook(ctx context.Context) {
	name, _ := c.prompt("Nazwa: ")
	author, _ := c.prompt("Autor: ")
	copies, ok := c.prompt("Liczba egzemplarzy: ")
	if !ok {
		return
	}

	res := c.execute(ctx, library.Request{
		Command:    library.CmdAddBook,
		BookName:   name,
		BookAuthor: author,
		Copies:     copies,
	})
	if res.OK() {
		c.println("Książka dodana")
	}
}

func (c *Console) removeBook(ctx context.Context) {
	name, ok := c.prompt("Nazwa książki: ")
	if !ok {
		return
	}
	if res := c.execute(ctx, library.Request{Command: library.CmdRemoveBook, BookName: name}); res.OK() {
		c.println("Książka usunięta")
	}
}

func (c *Console) listOverdue(ctx context.Context) {
	res := c.execute(ctx, library.Request{Command: library.CmdListOverdue})
	if !res.OK() {
		return
	}

	overdue := res.Value.([]*models.OverdueLoan)
	if len(overdue) == 0 {
		c.println("Brak zaległych wypożyczeń")
		return
	}
	for _, o := range overdue {
		c.printf("%s: %s (%s), wypożyczona %s, spóźnienie %d dni\n",
			o.Username, o.BookName, o.BookAuthor, o.BorrowedAt.Format("2006-01-02"), o.OverdueDays)
	}
}

// Search wypisuje książki o dokładnie podanej nazwie. Nie wymaga logowania.
func (c *Console) Search(ctx context.Context, name string) bool {
	res := c.execute(ctx, library.Request{Command: library.CmdSearch, BookName: name})
	if !res.OK() {
		return false
	}

	books := res.Value.([]*models.Book)
	if len(books) == 0 {
		c.println("Nie znaleziono książki")
		return true
	}
	for _, b := range books {
		c.printf("%s - %s, dostępne egzemplarze: %d\n", b.Name, b.Author, b.AvailableCopies)
	}
	return true
}

func (c *Console) borrow(ctx context.Context) {
	name, _ := c.prompt("Nazwa książki: ")
	author, ok := c.prompt("Autor: ")
	if !ok {
		return
	}

	res := c.execute(ctx, library.Request{Command: library.CmdBorrow, BookName: name, BookAuthor: author})
	if res.OK() {
		loan := res.Value.(*models.Loan)
		c.printf("Wypożyczono %s. Zwróć do %s\n", loan.BookName,
			loan.DueAt(c.desk.Loans.Period()).Format("2006-01-02"))
	}
}

func (c *Console) listMine(ctx context.Context) {
	res := c.execute(ctx, library.Request{Command: library.CmdListMine})
	if !res.OK() {
		return
	}

	loans := res.Value.([]*models.LoanStatus)
	if len(loans) == 0 {
		c.println("Nie masz wypożyczonych książek")
		return
	}
	for _, l := range loans {
		if l.Expired {
			c.printf("%s (%s): termin minął\n", l.BookName, l.BookAuthor)
			continue
		}
		c.printf("%s (%s): zostało %d dni\n", l.BookName, l.BookAuthor, l.DaysLeft)
	}
}

func (c *Console) returnBook(ctx context.Context) {
	name, _ := c.prompt("Nazwa książki: ")
	author, ok := c.prompt("Autor: ")
	if !ok {
		return
	}
	if res := c.execute(ctx, library.Request{Command: library.CmdReturn, BookName: name, BookAuthor: author}); res.OK() {
		c.println("Książka zwrócona")
	}
}

// execute wykonuje polecenie w bieżącej sesji i wypisuje błąd jeśli wystąpił
func (c *Console) execute(ctx context.Context, req library.Request) library.Result {
	res := c.desk.Execute(ctx, c.session, req)
	if !res.OK() {
		c.printError(res.Err)
	}
	return res
}

func (c *Console) prompt(label string) (string, bool) {
	line, ok := c.readLine(label)
	return strings.TrimSpace(line), ok
}

// readLine zwraca linię bez przycinania spacji
func (c *Console) readLine(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// promptLine czyta hasło tak jak zostało wpisane
func (c *Console) promptLine(label string) (string, error) {
	line, ok := c.readLine(label)
	if !ok {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return line, nil
}

func (c *Console) printError(err *library.Error) {
	c.printf("Błąd: %s\n", err.Message)
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func containsUsername(list []models.Credentials, username string) bool {
	for _, cr := range list {
		if cr.Username == username {
			return true
		}
	}
	return false
}
