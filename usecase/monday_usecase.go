package usecase

import (
	"context"
	"fmt"
	"strconv"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/clients/monday"
	"social-dashboard/infrastructure/logger"
)

// IMondaySync is the narrow surface the link flow needs: push one link's
// metrics to the company's connected board, if any.
type IMondaySync interface {
	SyncLink(ctx context.Context, link model.Link, metrics model.LinkMetrics) error
}

type IMondayUsecase interface {
	IMondaySync
	VerifyToken(ctx context.Context, token string) error
	ListWorkspaces(ctx context.Context, token string) ([]dto.MondayWorkspace, error)
	ListBoards(ctx context.Context, token, workspaceID string) ([]dto.MondayBoard, error)
	ListColumns(ctx context.Context, token, boardID string) ([]dto.MondayColumn, error)
	Connect(ctx context.Context, userID int64, req dto.MondayConnectRequest) (model.MondayConnection, error)
	GetConnection(ctx context.Context, companyID int64) (model.MondayConnection, error)
}

// clientFactory lets tests substitute a fake Monday client.
type clientFactory func(token string) (*monday.Client, error)

type mondayUsecase struct {
	connRepo  repository.IMondayConnection
	linkRepo  repository.ILink
	newClient clientFactory
}

func NewMondayUsecase(connRepo repository.IMondayConnection, linkRepo repository.ILink) IMondayUsecase {
	return &mondayUsecase{
		connRepo:  connRepo,
		linkRepo:  linkRepo,
		newClient: monday.NewClient,
	}
}

func (u *mondayUsecase) VerifyToken(ctx context.Context, token string) error {
	client, err := u.newClient(token)
	if err != nil {
		return err
	}
	me, err := client.VerifyToken(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().WithField("mondayUser", me.Name).Info("monday token verified")
	return nil
}

func (u *mondayUsecase) ListWorkspaces(ctx context.Context, token string) ([]dto.MondayWorkspace, error) {
	client, err := u.newClient(token)
	if err != nil {
		return nil, err
	}
	ws, err := client.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MondayWorkspace, 0, len(ws))
	for _, w := range ws {
		out = append(out, dto.MondayWorkspace{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

func (u *mondayUsecase) ListBoards(ctx context.Context, token, workspaceID string) ([]dto.MondayBoard, error) {
	client, err := u.newClient(token)
	if err != nil {
		return nil, err
	}
	boards, err := client.ListBoards(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MondayBoard, 0, len(boards))
	for _, b := range boards {
		out = append(out, dto.MondayBoard{ID: b.ID, Name: b.Name})
	}
	return out, nil
}

func (u *mondayUsecase) ListColumns(ctx context.Context, token, boardID string) ([]dto.MondayColumn, error) {
	client, err := u.newClient(token)
	if err != nil {
		return nil, err
	}
	cols, err := client.ListColumns(ctx, boardID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MondayColumn, 0, len(cols))
	for _, c := range cols {
		out = append(out, dto.MondayColumn{ID: c.ID, Title: c.Title, Type: c.Type})
	}
	return out, nil
}

// Connect verifies the token before persisting the binding so a typo'd
// token is rejected at setup time, not at the first sync.
func (u *mondayUsecase) Connect(ctx context.Context, userID int64, req dto.MondayConnectRequest) (model.MondayConnection, error) {
	if err := u.VerifyToken(ctx, req.APIToken); err != nil {
		return model.MondayConnection{}, fmt.Errorf("token verification failed: %w", err)
	}
	return u.connRepo.Upsert(ctx, model.MondayConnection{
		UserID:           userID,
		CompanyID:        req.CompanyID,
		APIToken:         req.APIToken,
		WorkspaceID:      req.WorkspaceID,
		WorkspaceName:    req.WorkspaceName,
		BoardID:          req.BoardID,
		BoardName:        req.BoardName,
		ViewsColumnID:    req.ViewsColumnID,
		LikesColumnID:    req.LikesColumnID,
		CommentsColumnID: req.CommentsColumnID,
	})
}

func (u *mondayUsecase) GetConnection(ctx context.Context, companyID int64) (model.MondayConnection, error) {
	return u.connRepo.GetByCompany(ctx, companyID)
}

// SyncLink pushes a link's metrics to its company's board. The first sync
// creates the item and remembers its ID; later syncs update column values.
func (u *mondayUsecase) SyncLink(ctx context.Context, link model.Link, metrics model.LinkMetrics) error {
	conn, err := u.connRepo.GetByCompany(ctx, link.CompanyID)
	if err != nil {
		// No connection means nothing to sync.
		return nil
	}
	client, err := u.newClient(conn.APIToken)
	if err != nil {
		return err
	}

	values := map[string]interface{}{}
	if conn.ViewsColumnID != "" {
		values[conn.ViewsColumnID] = strconv.FormatInt(metrics.Views, 10)
	}
	if conn.LikesColumnID != "" {
		values[conn.LikesColumnID] = strconv.FormatInt(metrics.Likes, 10)
	}
	if conn.CommentsColumnID != "" {
		values[conn.CommentsColumnID] = strconv.FormatInt(metrics.Comments, 10)
	}

	if link.MondayItemID == nil || *link.MondayItemID == "" {
		name := link.Title
		if name == "" {
			name = link.CanonicalURL
		}
		itemID, err := client.CreateItem(ctx, conn.BoardID, name, values)
		if err != nil {
			return err
		}
		return u.linkRepo.SetMondayItemID(ctx, link.ID, itemID)
	}
	return client.UpdateColumnValues(ctx, conn.BoardID, *link.MondayItemID, values)
}
