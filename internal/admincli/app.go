// Package admincli implements the operator command-line tool. It talks to
// the database directly, bypassing the HTTP API, so an operator can create
// accounts or stage attachments even when the server is down.
package admincli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/logging"
	"github.com/campkeeper/campkeeper/internal/netx"
	"github.com/campkeeper/campkeeper/internal/server/config"
	"github.com/campkeeper/campkeeper/internal/server/models"
	"github.com/campkeeper/campkeeper/internal/server/repositories/repomanager"
	"github.com/campkeeper/campkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// userCreator is the slice of UserService the CLI needs.
type userCreator interface {
	Create(ctx context.Context, editorName, userName, password string, roleNames []string) (*models.User, error)
}

// attachmentPresigner vends upload URLs for staging attachments.
type attachmentPresigner interface {
	GetPresignedPutURL(ctx context.Context) (string, string, error)
}

// uploadToPresignedURL is a test seam for netx.UploadToPresignedURL.
var uploadToPresignedURL = netx.UploadToPresignedURL

type App struct {
	db          *sql.DB
	users       userCreator
	attachments attachmentPresigner
	out         io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	return &App{
		db:          db,
		users:       services.NewUserService(db, m, logger),
		attachments: services.NewAttachmentService(cfg),
		out:         os.Stdout,
	}, nil
}

// Run dispatches the subcommand named in args[0].
func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: admin <create-user|upload-attachment> [flags]", common.ErrInvalidArgument)
	}

	switch args[0] {
	case "create-user":
		return app.runCreateUser(ctx, args[1:])
	case "upload-attachment":
		return app.runUploadAttachment(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", common.ErrInvalidArgument, args[0])
	}
}

func (app *App) runCreateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	userName := fs.String("n", "", "user name")
	roleList := fs.String("r", "", "comma-separated role names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userName == "" {
		return fmt.Errorf("%w: -n is required", common.ErrInvalidArgument)
	}

	var roleNames []string
	if *roleList != "" {
		roleNames = strings.Split(*roleList, ",")
	}

	password, err := GetPassword(app.out)
	if err != nil {
		return err
	}

	user, err := app.users.Create(ctx, common.SystemEditorName, *userName, string(password), roleNames)
	if err != nil {
		if errors.Is(err, common.ErrInvalidArgument) {
			return err
		}
		return fmt.Errorf("user creation failed: %w", err)
	}

	fmt.Fprintf(app.out, "created user %q with roles %v\n", user.UserName, user.Roles)
	return nil
}

func (app *App) runUploadAttachment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload-attachment", flag.ContinueOnError)
	path := fs.String("f", "", "path of the file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("%w: -f is required", common.ErrInvalidArgument)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return err
	}

	key, url, err := app.attachments.GetPresignedPutURL(ctx)
	if err != nil {
		return fmt.Errorf("presign failed: %w", err)
	}

	if err := uploadToPresignedURL(ctx, url, data); err != nil {
		return err
	}

	fmt.Fprintf(app.out, "uploaded %s as %s\n", *path, key)
	return nil
}

// Close releases the database connection.
func (app *App) Close() error {
	return app.db.Close()
}
