// Package config loads runtime configuration for the OTPKeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables, including a .env file in the working directory.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-m string   mode: remote or local
//	-a string   address:port of the backend gRPC endpoint
//	-d string   path of the local SQLite database
//	-p string   local profile name
//	-i int      online status check interval (seconds)
//	-r int      code refresh interval (milliseconds)
//	-o string   directory for exported QR codes and downloaded icons
//	-l string   log level: debug, info, warn, error
//
// Environment variables
//
//	OTPKEEPER_MODE, OTPKEEPER_SERVER_ADDR, OTPKEEPER_DB, OTPKEEPER_PROFILE,
//	OTPKEEPER_ONLINE_CHECK_INTERVAL, OTPKEEPER_REFRESH_INTERVAL,
//	OTPKEEPER_OUTPUT_DIR, OTPKEEPER_LOG_LEVEL
//
// Intervals in the environment use Go duration syntax ("3s").
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "mode": "remote",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "otpkeeper.db",
//	  "profile": "default",
//	  "online_check_interval": "3s",
//	  "refresh_interval": "1s",
//	  "output_dir": "otpkeeper-data",
//	  "log_level": "warn"
//	}
//
// Keys missing from the file keep their previous values.
package config
