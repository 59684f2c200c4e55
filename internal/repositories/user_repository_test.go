package repositories

import (
	"context"
	"testing"

	"sparetime/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInterestAddRemoveSetSemantics(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	mock.ExpectExec("INSERT IGNORE INTO user_interests").
		WithArgs("user-1", "cooking").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT IGNORE INTO user_interests").
		WithArgs("user-1", "cooking").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM user_interests").
		WithArgs("user-1", "cooking").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user_interests").
		WithArgs("user-1", "cooking").
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddInterest(context.Background(), "user-1", "cooking")
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	added, err = repo.AddInterest(context.Background(), "user-1", "cooking")
	if err != nil || added {
		t.Fatalf("duplicate add must be a no-op: added=%v err=%v", added, err)
	}
	removed, err := repo.RemoveInterest(context.Background(), "user-1", "cooking")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	removed, err = repo.RemoveInterest(context.Background(), "user-1", "cooking")
	if err != nil || removed {
		t.Fatalf("remove of absent interest must be a no-op: removed=%v err=%v", removed, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileLoadsInterestsAndAverageVideo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	mock.ExpectQuery("SELECT username, average_video FROM users").
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"username", "average_video"}).
			AddRow("tester", `{"title":[0.1,0.2]}`))
	mock.ExpectQuery("SELECT interest FROM user_interests").
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"interest"}).
			AddRow("cooking").AddRow("climbing"))

	p, err := repo.Profile(context.Background(), "7")
	if err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if p.Username != "tester" || len(p.Interests) != 2 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if string(p.AverageVideo) != `{"title":[0.1,0.2]}` {
		t.Fatalf("average_video must pass through verbatim, got %s", p.AverageVideo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileUnknownUserIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	mock.ExpectQuery("SELECT username, average_video FROM users").
		WithArgs("999").
		WillReturnRows(sqlmock.NewRows([]string{"username", "average_video"}))

	if _, err := repo.Profile(context.Background(), "999"); !domain.IsNotFound(err) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestReplaceInterestsRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := UserRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_interests").
		WithArgs("7").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT IGNORE INTO user_interests").
		WithArgs("7", "surfing").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceInterests(context.Background(), "7", []string{"surfing"}); err != nil {
		t.Fatalf("replace interests error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
