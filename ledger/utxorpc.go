// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package ledger

import (
	utxorpc "github.com/utxorpc/go-codegen/utxorpc/v1alpha/cardano"
)

func (o LegacyTransactionOutput) Utxorpc() *utxorpc.TxOutput {
	return outputUtxorpc(o)
}

func (o BabbageTransactionOutput) Utxorpc() *utxorpc.TxOutput {
	return outputUtxorpc(o)
}

func outputUtxorpc(o TransactionOutput) *utxorpc.TxOutput {
	address := o.Address().Bytes()
	if address == nil {
		address = []byte{}
	}
	var lovelace uint64
	var assets []*utxorpc.Multiasset
	if amount := o.Amount(); amount != nil {
		lovelace = amount.Lovelace()
		tmpAssets := amount.MultiAssets()
		for _, policyId := range tmpAssets.Policies() {
			ma := &utxorpc.Multiasset{
				PolicyId: policyId.Bytes(),
			}
			for _, assetName := range tmpAssets.Assets(policyId) {
				ma.Assets = append(ma.Assets, &utxorpc.Asset{
					Name:       assetName,
					OutputCoin: tmpAssets.Asset(policyId, assetName),
				})
			}
			assets = append(assets, ma)
		}
	}
	datumHash := []byte{}
	if hash := o.DatumHash(); hash != nil {
		datumHash = hash.Bytes()
	}
	return &utxorpc.TxOutput{
		Address: address,
		Coin:    lovelace,
		Assets:  assets,
		Datum: &utxorpc.Datum{
			Hash: datumHash,
		},
	}
}

// Utxorpc converts the transaction to its UTxO RPC form
func (t Transaction) Utxorpc() (*utxorpc.Tx, error) {
	txHash, err := t.Hash()
	if err != nil {
		return nil, err
	}
	txi := []*utxorpc.TxInput{}
	txo := []*utxorpc.TxOutput{}
	for _, i := range t.Body.Inputs() {
		txi = append(txi, i.Utxorpc())
	}
	for _, o := range t.Body.Outputs() {
		txo = append(txo, outputUtxorpc(o))
	}
	return &utxorpc.Tx{
		Inputs:  txi,
		Outputs: txo,
		Fee:     t.Body.Fee(),
		Hash:    txHash.Bytes(),
	}, nil
}

// BlockUtxorpc converts a block to its UTxO RPC form
func BlockUtxorpc(b Block) (*utxorpc.Block, error) {
	blockHash, err := b.Hash()
	if err != nil {
		return nil, err
	}
	txs := []*utxorpc.Tx{}
	for _, t := range b.Transactions() {
		tx, err := t.Utxorpc()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	header := b.BlockHeader()
	return &utxorpc.Block{
		Header: &utxorpc.BlockHeader{
			Hash:   blockHash.Bytes(),
			Height: header.BlockNumber(),
			Slot:   header.SlotNumber(),
		},
		Body: &utxorpc.BlockBody{
			Tx: txs,
		},
	}, nil
}
