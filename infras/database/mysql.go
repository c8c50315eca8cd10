package database

import (
	"net"
	"resort/config"
	"time"

	"github.com/go-sql-driver/mysql"
)

func mysqlDSN(cfg *config.Config, endpoint config.DBEndpoint) string {
	mysqlConfig := mysql.NewConfig()
	mysqlConfig.User = endpoint.Username
	mysqlConfig.Passwd = endpoint.Password
	mysqlConfig.Net = "tcp"
	mysqlConfig.Addr = net.JoinHostPort(endpoint.Host, endpoint.Port)
	mysqlConfig.DBName = cfg.DBName(endpoint.Name)
	mysqlConfig.ParseTime = true
	mysqlConfig.Loc = time.UTC

	if endpoint.Timezone != "" {
		if loc, err := time.LoadLocation(endpoint.Timezone); err == nil {
			mysqlConfig.Loc = loc
		}
	}

	return mysqlConfig.FormatDSN()
}
