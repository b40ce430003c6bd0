// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package recommend implements the hybrid song recommender.
//
// # Pipeline
//
// A request flows through four stages:
//
//   - Vectorize: preferences become an 11-slot raw feature vector which is
//     standardized with the catalog's fitted Scaler.
//   - Content scoring: cosine similarity of the vector against every
//     normalized catalog row, divided by the maximum when it is positive.
//   - Collaborative scoring: the pseudo-user profile sharing the most
//     preference field names with the request contributes 1.0 for every
//     song it liked.
//   - Blending: 0.7*content + 0.3*collab, ranked descending with ties
//     broken by ascending catalog index.
//
// # Concurrency
//
// Service publishes the catalog and the profile set through atomic
// pointers. A query loads each pointer once and works on that snapshot, so
// it never observes a half-built catalog or profile set. ReloadCatalog and
// Retrain build their replacement off to the side, then swap it in; the two
// writers are serialized by a mutex that readers never take.
//
// # Usage
//
//	svc, err := recommend.NewService(recommend.DefaultConfig(), store, logger)
//	if err := svc.ReloadCatalog(ctx, "data/mainSong.csv"); err != nil {
//		return err
//	}
//	songs, err := svc.Recommend(ctx, prefs, 10)
package recommend
