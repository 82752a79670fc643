// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fastqtools implements a three-stage parallel pipeline for
// processing FASTQ sequencing records: InputStage reads batches in
// order, a ProcessingStage worker pool applies a predicate/mutator
// chain to each record in parallel, and OutputStage restores the
// original batch order before writing.
//
// Batches move between InputStage and the worker pool over an SPMC
// queue, and from the worker pool to OutputStage over an MPSC queue
// (code.hybscloud.com/lfq), with a per-run BatchPool recycling batch
// buffers between stages and enforcing the pipeline's single backpressure
// bound, max_in_flight.
//
// Concrete RecordReader/RecordWriter implementations for gzip-aware
// FASTQ files live in internal/fastqio; ready-made Predicate and
// Mutator implementations live in fastqpredicates and fastqmutators.
package fastqtools
