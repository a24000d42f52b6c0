package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"prtracker/internal/domain"
	"prtracker/internal/domain/member"
	"prtracker/internal/domain/pullrequest"
	"prtracker/internal/infrastructure/db/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := sqlite.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestProjectRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	desc := "REST API and services"
	created, err := repo.Create(ctx, "Backend API", &desc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Backend API" || got.Description == nil || *got.Description != desc {
		t.Fatalf("unexpected project: %+v", got)
	}

	updated, err := repo.Update(ctx, created.ID, "Backend Core", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Backend Core" || updated.Description != nil {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !isNotFound(err) {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestProjectListOrderedByName(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Mobile App", "Backend API", "Frontend Core"} {
		if _, err := repo.Create(ctx, name, nil); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Backend API" || list[2].Name != "Mobile App" {
		t.Fatalf("list not ordered by name: %+v", list)
	}
}

func TestProjectNameUnique(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "DevOps Tools", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, "DevOps Tools", nil); err == nil {
		t.Fatalf("duplicate project name should be rejected by the store")
	}
}

func TestMemberInsertAndLookup(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewMemberRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByUsername(ctx, "octocat"); !isNotFound(err) {
		t.Fatalf("expected NOT_FOUND for unknown member, got %v", err)
	}

	avatar := "https://avatars.githubusercontent.com/u/1"
	created, err := repo.Insert(ctx, member.Member{Username: "octocat", AvatarURL: &avatar})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "octocat")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != created.ID || got.AvatarURL == nil || *got.AvatarURL != avatar {
		t.Fatalf("unexpected member: %+v", got)
	}

	name := "The Octocat"
	if err := repo.UpdateProfile(ctx, created.ID, &avatar, &name); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	got, _ = repo.GetByUsername(ctx, "octocat")
	if got.DisplayName == nil || *got.DisplayName != name {
		t.Fatalf("display name not updated: %+v", got)
	}
}

func TestPullRequestCreateAndJoin(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	projects := sqlite.NewProjectRepository(db)
	members := sqlite.NewMemberRepository(db)
	prs := sqlite.NewPRRepository(db)

	proj, err := projects.Create(ctx, "Backend API", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	author, err := members.Insert(ctx, member.Member{Username: "janedoe"})
	if err != nil {
		t.Fatalf("insert member: %v", err)
	}

	title := "Fix login flow"
	branch := "fix/login"
	owner, repoName := "acme", "widgets"
	created, err := prs.Create(ctx, pullrequest.PullRequest{
		GithubID:  987654,
		Number:    42,
		Title:     &title,
		AuthorID:  author.ID,
		ProjectID: &proj.ID,
		Status:    pullrequest.StatusWaiting,
		Branch:    &branch,
		RepoOwner: &owner,
		RepoName:  &repoName,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.AuthorName == nil || *created.AuthorName != "janedoe" {
		t.Fatalf("author join missing: %+v", created)
	}
	if created.ProjectName == nil || *created.ProjectName != "Backend API" {
		t.Fatalf("project join missing: %+v", created)
	}

	got, err := prs.GetByGithubID(ctx, 987654)
	if err != nil {
		t.Fatalf("GetByGithubID: %v", err)
	}
	if got.ID != created.ID || got.Number != 42 {
		t.Fatalf("unexpected pr: %+v", got)
	}

	count, err := prs.CountByProject(ctx, proj.ID)
	if err != nil || count != 1 {
		t.Fatalf("CountByProject: %d %v", count, err)
	}
}

func TestPullRequestGithubIDUnique(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	members := sqlite.NewMemberRepository(db)
	prs := sqlite.NewPRRepository(db)

	author, _ := members.Insert(ctx, member.Member{Username: "janedoe"})

	pr := pullrequest.PullRequest{GithubID: 1111, Number: 1, AuthorID: author.ID, Status: pullrequest.StatusWaiting}
	if _, err := prs.Create(ctx, pr); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := prs.Create(ctx, pr); err == nil {
		t.Fatalf("duplicate github_id should be rejected by the store")
	}
}

func TestPointUpdates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	members := sqlite.NewMemberRepository(db)
	projects := sqlite.NewProjectRepository(db)
	prs := sqlite.NewPRRepository(db)

	author, _ := members.Insert(ctx, member.Member{Username: "janedoe"})
	proj, _ := projects.Create(ctx, "Backend API", nil)

	created, err := prs.Create(ctx, pullrequest.PullRequest{
		GithubID: 2222, Number: 7, AuthorID: author.ID, Status: pullrequest.StatusWaiting,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := prs.SetStatus(ctx, created.ID, "Reviewing"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := prs.SetScore(ctx, created.ID, 9); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	if err := prs.SetProject(ctx, created.ID, proj.ID); err != nil {
		t.Fatalf("SetProject: %v", err)
	}

	got, _ := prs.GetByGithubID(ctx, 2222)
	if got.Status != "Reviewing" || got.Score == nil || *got.Score != 9 {
		t.Fatalf("point updates not applied: %+v", got)
	}
	if got.ProjectID == nil || *got.ProjectID != proj.ID {
		t.Fatalf("project not assigned: %+v", got)
	}

	if err := prs.SetStatus(ctx, 9999, "Reviewing"); !isNotFound(err) {
		t.Fatalf("expected NOT_FOUND for missing pr, got %v", err)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	members := sqlite.NewMemberRepository(db)
	prs := sqlite.NewPRRepository(db)
	history := sqlite.NewHistoryRepository(db)

	author, _ := members.Insert(ctx, member.Member{Username: "janedoe"})
	created, _ := prs.Create(ctx, pullrequest.PullRequest{
		GithubID: 3333, Number: 3, AuthorID: author.ID, Status: pullrequest.StatusWaiting,
	})

	if err := history.Add(ctx, created.ID, pullrequest.ActionAdded); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := history.Add(ctx, created.ID, pullrequest.ActionStatusChanged); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rows, err := history.ListByPR(ctx, created.ID)
	if err != nil {
		t.Fatalf("ListByPR: %v", err)
	}
	if len(rows) != 2 || rows[0].Action != pullrequest.ActionAdded {
		t.Fatalf("unexpected history: %+v", rows)
	}
}

func TestClearAll(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	projects := sqlite.NewProjectRepository(db)
	members := sqlite.NewMemberRepository(db)
	prs := sqlite.NewPRRepository(db)

	proj, _ := projects.Create(ctx, "Backend API", nil)
	author, _ := members.Insert(ctx, member.Member{Username: "janedoe"})
	if _, err := prs.Create(ctx, pullrequest.PullRequest{
		GithubID: 4444, Number: 4, AuthorID: author.ID, ProjectID: &proj.ID, Status: pullrequest.StatusWaiting,
	}); err != nil {
		t.Fatalf("create pr: %v", err)
	}

	if err := sqlite.NewMaintenance(db).ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	list, err := prs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("store should be empty, got %d pull requests", len(list))
	}
	remaining, err := projects.List(ctx)
	if err != nil || len(remaining) != 0 {
		t.Fatalf("projects should be empty: %v %v", remaining, err)
	}
}

func TestTxManagerRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	uow := sqlite.NewTxManager(db)
	projects := sqlite.NewProjectRepository(db)

	wantErr := errors.New("boom")
	err := uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := projects.Create(ctx, "Doomed", nil); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}

	list, err := projects.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rolled-back project should not exist: %+v", list)
	}
}

func isNotFound(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound
}
