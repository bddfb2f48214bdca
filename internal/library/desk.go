package library

import (
	"context"

	"github.com/sirupsen/logrus"

	"library-desk/internal/models"
)

// Command to jedna z operacji dostępnych dla warstwy prezentacji
type Command string

const (
	CmdBootstrap   Command = "bootstrap"
	CmdRegister    Command = "register"
	CmdLogin       Command = "login"
	CmdAddBook     Command = "add-book"
	CmdRemoveBook  Command = "remove-book"
	CmdSearch      Command = "search"
	CmdBorrow      Command = "borrow"
	CmdReturn      Command = "return"
	CmdListMine    Command = "list-mine"
	CmdListOverdue Command = "list-overdue"
)

// Commands zwraca wszystkie obsługiwane polecenia
func Commands() []Command {
	return []Command{
		CmdBootstrap, CmdRegister, CmdLogin, CmdAddBook, CmdRemoveBook,
		CmdSearch, CmdBorrow, CmdReturn, CmdListMine, CmdListOverdue,
	}
}

// Request to dane wejściowe polecenia; każde polecenie czyta tylko swoje pola
type Request struct {
	Command    Command              `json:"command"`
	Username   string               `json:"username,omitempty"`
	Password   string               `json:"password,omitempty"`
	Admins     []models.Credentials `json:"admins,omitempty"`
	BookName   string               `json:"book_name,omitempty"`
	BookAuthor string               `json:"book_author,omitempty"`
	Copies     string               `json:"copies,omitempty"`
}

// Result to wynik polecenia: wartość albo sklasyfikowany błąd
type Result struct {
	Command Command
	Value   interface{}
	Err     *Error
}

// OK sprawdza czy polecenie zakończyło się sukcesem
func (r Result) OK() bool {
	return r.Err == nil
}

// Desk łączy trzy usługi i wykonuje polecenia warstwy prezentacji
type Desk struct {
	Accounts *AccountService
	Catalog  *CatalogService
	Loans    *LoanService
	log      logrus.FieldLogger
}

// NewDesk tworzy usługi na podstawie magazynów
func NewDesk(stores Stores, log logrus.FieldLogger, opts ...LoanOption) *Desk {
	return &Desk{
		Accounts: NewAccountService(stores.Credentials, log),
		Catalog:  NewCatalogService(stores.Catalog, log),
		Loans:    NewLoanService(stores.Catalog, stores.Loans, log, opts...),
		log:      log,
	}
}

// Execute wykonuje jedno polecenie. Dopóki nie ma administratora dostępne jest tylko CmdBootstrap.
func (d *Desk) Execute(ctx context.Context, sess *models.Session, req Request) Result {
	res := Result{Command: req.Command}

	if req.Command != CmdBootstrap {
		needed, err := d.Accounts.NeedsBootstrap(ctx)
		if err != nil {
			res.Err = AsError(err)
			return res
		}
		if needed {
			res.Err = newError(KindSetupRequired, "wymagana konfiguracja administratorów")
			return res
		}
	}

	var err error
	switch req.Command {
	case CmdBootstrap:
		err = d.Accounts.BootstrapAdmins(ctx, req.Admins)
	case CmdRegister:
		err = d.Accounts.Register(ctx, req.Username, req.Password)
	case CmdLogin:
		res.Value, err = d.Accounts.Authenticate(ctx, req.Username, req.Password)
	case CmdAddBook:
		res.Value, err = d.Catalog.AddBook(ctx, sess, req.BookName, req.BookAuthor, req.Copies)
	case CmdRemoveBook:
		err = d.Catalog.RemoveBook(ctx, sess, req.BookName)
	case CmdSearch:
		res.Value, err = d.Catalog.SearchBooks(ctx, req.BookName)
	case CmdBorrow:
		res.Value, err = d.Loans.Borrow(ctx, sess, req.BookName, req.BookAuthor)
	case CmdReturn:
		err = d.Loans.ReturnBook(ctx, sess, req.BookName, req.BookAuthor)
	case CmdListMine:
		res.Value, err = d.Loans.ListLoans(ctx, sess)
	case CmdListOverdue:
		res.Value, err = d.Loans.ListOverdue(ctx, sess)
	default:
		err = newError(KindInvalidInput, "nieznane polecenie: "+string(req.Command))
	}

	if err != nil {
		res.Value = nil
		res.Err = AsError(err)
		d.log.WithFields(logrus.Fields{
			"command": req.Command,
			"kind":    res.Err.Kind,
		}).Debug(res.Err.Error())
	}
	return res
}
