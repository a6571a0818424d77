// Package postgresengine provides a PostgreSQL-backed store for parsed
// magnet links.
//
// The LinkStore persists StorableLink projections and queries them back by
// info hash. It supports pgxpool.Pool, sql.DB, and sqlx.DB connections
// through internal database adapters, and is configured with functional
// options for the table name, logging, metrics, and tracing.
//
// Common usage pattern:
//
//	store, err := postgresengine.NewLinkStoreFromPGXPool(pool,
//		postgresengine.WithTableName("magnet_links"),
//		postgresengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	link, _ := magnetlink.BuildStorableLink(parsed)
//	err = store.Save(ctx, link)
package postgresengine
