package fakes

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o ./fake_ratelimiter.go ../ratelimiter Limiter
//counterfeiter:generate -o ./fake_replica_pool.go ../scalingengine ReplicaPool
//counterfeiter:generate -o ./fake_scalingengine.go ../scalingengine ScalingEngine
//counterfeiter:generate -o ./fake_collector.go ../metric Collector
//counterfeiter:generate -o ./fake_scaling_history_db.go ../db ScalingHistoryDB
//counterfeiter:generate -o ./fake_lock_db.go ../db LockDB
//counterfeiter:generate -o ./fake_database_status.go ../healthendpoint DatabaseStatus
//counterfeiter:generate -o ./fake_operator.go ../operator Operator
