package logs

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"

	"Stronghold/modules/kit/logx"
)

const maxLoggedSQL = 512

var tablePattern = regexp.MustCompile("(?i)\\b(?:from|into|update|table)\\s+`?(\\w+)`?")

// LeaderboardSQLLogger 把排行榜库上的 gorm 日志转成结构化 zap 日志。
// 每条带 store=mysql、语句类型与表名；ctx 里的 match_id / request_id 经 WithContext 带出。
type LeaderboardSQLLogger struct {
	log           logx.Logger
	level         glogger.LogLevel
	slowThreshold time.Duration
}

// NewLeaderboardSQLLogger log 为空时用全局 logger。
func NewLeaderboardSQLLogger(log logx.Logger, level glogger.LogLevel, slowThreshold time.Duration) *LeaderboardSQLLogger {
	if log == nil {
		log = logx.NewZapLogger(Logger())
	}
	return &LeaderboardSQLLogger{
		log:           log,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *LeaderboardSQLLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *LeaderboardSQLLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Info {
		l.log.WithContext(ctx).Info("leaderboard store: "+msg, zap.String("store", "mysql"), zap.Any("data", data))
	}
}

func (l *LeaderboardSQLLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Warn {
		l.log.WithContext(ctx).Warn("leaderboard store: "+msg, zap.String("store", "mysql"), zap.Any("data", data))
	}
}

func (l *LeaderboardSQLLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= glogger.Error {
		l.log.WithContext(ctx).Error("leaderboard store: "+msg, zap.String("store", "mysql"), zap.Any("data", data))
	}
}

func (l *LeaderboardSQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= glogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("store", "mysql"),
		zap.String("op", statementOp(sql)),
		zap.String("table", statementTable(sql)),
		zap.Int64("elapsed_ms", elapsed.Milliseconds()),
		zap.Int64("rows", rows),
		zap.String("sql", clip(sql)),
	}

	log := l.log.WithContext(ctx)
	switch {
	case errors.Is(err, glogger.ErrRecordNotFound):
		// 排行榜为空是正常情况
		if l.level >= glogger.Info {
			log.Debug("leaderboard row not found", fields...)
		}
	case err != nil:
		log.Error("leaderboard query failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		log.Warn("leaderboard query slow", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= glogger.Info:
		log.Debug("leaderboard query", fields...)
	}
}

// statementOp 取语句的首个关键字，小写。
func statementOp(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \n\t("); i > 0 {
		sql = sql[:i]
	}
	if sql == "" {
		return "unknown"
	}
	return strings.ToLower(sql)
}

func statementTable(sql string) string {
	if m := tablePattern.FindStringSubmatch(sql); len(m) == 2 {
		return m[1]
	}
	return ""
}

func clip(sql string) string {
	if len(sql) <= maxLoggedSQL {
		return sql
	}
	return sql[:maxLoggedSQL] + "..."
}
