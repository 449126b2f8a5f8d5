package dbprobe

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bnema/snapdb/internal/domain"
)

func pingPostgres(ctx context.Context, db domain.DatabaseConfig) error {
	conn, err := pgx.Connect(ctx, postgresURL(db))
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())
	return conn.Ping(ctx)
}

func pingMySQL(ctx context.Context, db domain.DatabaseConfig) error {
	connector, err := mysql.NewConnector(mysqlConfig(db))
	if err != nil {
		return err
	}
	pool := sql.OpenDB(connector)
	defer pool.Close()
	return pool.PingContext(ctx)
}

func pingMongo(ctx context.Context, db domain.DatabaseConfig) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI(db)))
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	return client.Ping(ctx, readpref.Primary())
}

func address(db domain.DatabaseConfig) string {
	host := db.Host
	if host == "" {
		host = "localhost"
	}
	port := db.Port
	if port == 0 {
		port = db.Engine.DefaultPort()
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func userInfo(db domain.DatabaseConfig) *url.Userinfo {
	switch {
	case db.User == "":
		return nil
	case db.Password == "":
		return url.User(db.User)
	default:
		return url.UserPassword(db.User, db.Password)
	}
}

func postgresURL(db domain.DatabaseConfig) string {
	if db.URI != "" {
		return db.URI
	}
	u := url.URL{Scheme: "postgres", User: userInfo(db), Host: address(db)}
	name := db.Name
	if name == "" {
		name = "postgres"
	}
	u.Path = "/" + name
	return u.String()
}

func mysqlConfig(db domain.DatabaseConfig) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = address(db)
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.DBName = db.Name
	return cfg
}

func mongoURI(db domain.DatabaseConfig) string {
	if db.URI != "" {
		return db.URI
	}
	u := url.URL{Scheme: "mongodb", User: userInfo(db), Host: address(db), Path: "/"}
	if db.AuthDatabase != "" {
		u.RawQuery = url.Values{"authSource": {db.AuthDatabase}}.Encode()
	}
	return u.String()
}
